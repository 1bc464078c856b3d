package v1

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"balkan-spine-wellness/config"
	"balkan-spine-wellness/internal/delivery/http/middleware"
	"balkan-spine-wellness/internal/delivery/http/response"
	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	PageUC      domain.PageUsecase
	Sessions    domain.ContactSessions
	HealthUC    usecase.HealthUsecase
	RateLimiter *middleware.RateLimiter
	Templates   *template.Template
	Static      fs.FS
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()
	r.SetHTMLTemplate(deps.Templates)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware("/v1/swagger"))
	r.Use(middleware.ErrorHandler())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	submitLimit := deps.RateLimiter.Middleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window))

	// Assets do not need a visitor session
	NewAssetHandler(r, deps.Static, deps.PageUC.Content())

	site := r.Group("")
	site.Use(middleware.VisitorSession(), middleware.CSRFMiddleware())
	NewPageHandler(site, deps.PageUC, deps.Sessions, submitLimit)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	if cfg.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := v1.Group("")
	api.Use(middleware.VisitorSession(), middleware.CSRFMiddleware())
	NewContactHandler(api, deps.Sessions, submitLimit)

	return r
}
