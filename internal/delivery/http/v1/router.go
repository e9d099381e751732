package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harisha-viswa/hiring-system/config"
	"github.com/harisha-viswa/hiring-system/internal/delivery/http/middleware"
	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/internal/domain"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	ApplicationUC domain.ApplicationUsecase
	RateLimit     middleware.RateLimitConfig
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must run before anything that can abort.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(deps.RateLimit))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Authenticated routes, split by role.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))

	candidate := protected.Group("")
	candidate.Use(middleware.RequireRole(domain.RoleCandidate))

	recruiter := protected.Group("")
	recruiter.Use(middleware.RequireRole(domain.RoleRecruiter))

	NewJobHandler(v1, recruiter, deps.JobUC)
	NewCandidateHandler(candidate, deps.CandidateUC)
	NewApplicationHandler(candidate, recruiter, deps.ApplicationUC)

	return r
}
