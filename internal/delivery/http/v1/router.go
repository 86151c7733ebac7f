package v1

import (
	"net/http"

	"recroot-backend/config"
	"recroot-backend/internal/delivery/http/middleware"
	"recroot-backend/internal/delivery/http/response"
	"recroot-backend/internal/domain"
	"recroot-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	UploadUC    domain.ResumeUploadUsecase
	HealthUC    usecase.HealthUsecase
	Resolver    middleware.IdentityResolver
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler())

	// Uploaded resumes are served back at the path returned by the upload
	// endpoint
	r.Static("/uploads", deps.Config.UploadDir)

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Fail(c, http.StatusServiceUnavailable, status)
			return
		}
		response.Success(c, http.StatusOK, status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Resolver))
	{
		NewCandidateHandler(protected, deps.CandidateUC, deps.UploadUC)
	}

	return r
}
