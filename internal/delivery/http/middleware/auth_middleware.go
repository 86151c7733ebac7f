package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recroot-backend/internal/delivery/http/response"
	"recroot-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityResolver turns an incoming request into a user identity. The
// candidate routes only care about who the caller is, not how the token
// was minted, so verifiers are swappable behind this interface.
type IdentityResolver interface {
	Resolve(c *gin.Context) (*domain.User, error)
}

// MockResolver resolves every request to a fixed user. Development and
// test mode; never enable in production.
type MockResolver struct {
	User domain.User
}

func (m *MockResolver) Resolve(_ *gin.Context) (*domain.User, error) {
	u := m.User
	return &u, nil
}

// JWTResolver verifies an HS256 bearer token and maps its claims to a
// user. Token is taken from the Authorization header, falling back to
// the auth_token cookie.
type JWTResolver struct {
	Secret string
}

func (j *JWTResolver) Resolve(c *gin.Context) (*domain.User, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return nil, fmt.Errorf("authorization token required")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return &domain.User{ID: sub, Name: name, Email: email, Role: role}, nil
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware resolves the caller identity and stores it both in the
// gin keys (for handlers) and the request context (for usecases reading
// typed keys).
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, user.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
