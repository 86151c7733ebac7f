package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recroot-backend/config"
	"recroot-backend/internal/delivery/http/middleware"
	v1 "recroot-backend/internal/delivery/http/v1"
	"recroot-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealthUC struct {
	status map[string]string
}

func (f *fakeHealthUC) Check(ctx context.Context) map[string]string {
	return f.status
}

func healthRouter(t *testing.T, status map[string]string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		HealthUC: &fakeHealthUC{status: status},
		Resolver: &middleware.MockResolver{User: domain.User{ID: "user1"}},
		Config: &config.Config{
			FrontendURL: "http://localhost:5173",
			UploadDir:   t.TempDir(),
		},
	})
}

func getHealth(t *testing.T, r *gin.Engine) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthEnvelope(t *testing.T) {
	t.Run("Healthy dependencies report success with 200", func(t *testing.T) {
		r := healthRouter(t, map[string]string{"status": "ok", "database": "up", "redis": "disabled"})

		w, body := getHealth(t, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "ok", data["status"])
	})

	t.Run("Degraded dependencies report success false with 503", func(t *testing.T) {
		r := healthRouter(t, map[string]string{"status": "degraded", "database": "down", "redis": "up"})

		w, body := getHealth(t, r)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		// Clients branch on success, so the envelope must agree with the code
		assert.Equal(t, false, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "down", data["database"])
	})
}
