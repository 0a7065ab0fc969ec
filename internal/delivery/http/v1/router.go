package v1

import (
	"time"

	"chefdhundo-backend/internal/delivery/http/middleware"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/clerk"
	"chefdhundo-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	HealthUC    usecase.HealthUsecase
	RoleUC      usecase.RoleUsecase
	DirectoryUC usecase.DirectoryUsecase
	ResumeUC    usecase.ResumeUsecase
	EditUC      usecase.EditUsecase
	AccountUC   usecase.AccountUsecase
	PaymentUC   usecase.PaymentUsecase
	ContactUC   domain.ContactUsecase

	Verifier      middleware.TokenVerifier
	ClerkVerifier *clerk.Verifier
	SecurityLog   *security.SecurityLogger
	Redis         *goredis.Client

	AllowedOrigins []string
	Production     bool

	RateLimitWindow  time.Duration
	GlobalRateLimit  int
	WebhookRateLimit int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins, deps.Production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	if deps.GlobalRateLimit > 0 {
		r.Use(middleware.RateLimitMiddleware(
			middleware.GlobalRateLimitConfig(deps.GlobalRateLimit, deps.RateLimitWindow), deps.Redis, deps.SecurityLog))
	}

	v1 := r.Group("/v1")

	// Public routes
	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	webhooks := v1.Group("")
	if deps.WebhookRateLimit > 0 {
		webhooks.Use(middleware.RateLimitMiddleware(
			middleware.WebhookRateLimitConfig(deps.WebhookRateLimit, deps.RateLimitWindow), deps.Redis, deps.SecurityLog))
	}
	NewWebhookHandler(webhooks, deps.AccountUC, deps.PaymentUC, deps.ClerkVerifier, deps.SecurityLog)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.SecurityLog))
	protected.Use(middleware.CSRFMiddleware())
	{
		NewAccountHandler(protected, deps.RoleUC)
		NewChefHandler(protected, deps.DirectoryUC)
		NewResumeHandler(protected, deps.ResumeUC, deps.SecurityLog)
		NewDashboardHandler(protected, deps.EditUC)
		NewPaymentHandler(protected, deps.PaymentUC)
	}

	return r
}
