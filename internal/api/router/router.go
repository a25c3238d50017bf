package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
	"github.com/kvnochieng52/flight-distance/internal/api/handler"
	"github.com/kvnochieng52/flight-distance/internal/api/middleware"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/metrics"
	"github.com/kvnochieng52/flight-distance/pkg/storage"
)

// Deps are the collaborators the route table needs besides the handlers.
// Limiter, Metrics and Store may be nil.
type Deps struct {
	Auth    service.AuthService
	Limiter middleware.RateLimiter
	Metrics *metrics.Metrics
	Store   storage.Store
}

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger, cfg.Server.Debug))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
		r.Use(middleware.ErrorReporter())
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── health & metrics ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	// thumbnails written by the local driver
	if local, ok := deps.Store.(*storage.LocalStore); ok {
		r.Static("/storage", local.Root())
	}

	api := r.Group("/api")
	{
		throttle := middleware.RateLimit(deps.Limiter, cfg.Auth.RateLimit, cfg.Auth.RateWindow)

		auth := api.Group("/auth")
		{
			auth.POST("/register", throttle, h.Auth.Register)
			auth.POST("/login", throttle, h.Auth.Login)
			auth.POST("/token", throttle, h.Auth.CreateToken)
		}

		api.GET("/terms", h.Terms.GetActive)

		authorized := api.Group("")
		authorized.Use(middleware.BearerAuth(deps.Auth))
		{
			authorized.GET("/user", h.User.GetCurrentUser)
			authorized.POST("/auth/revoke-token", h.Auth.RevokeToken)
			authorized.POST("/auth/revoke-all-tokens", h.Auth.RevokeAllTokens)

			coordinates := authorized.Group("/coordinates")
			{
				coordinates.GET("", h.Coordinate.ListCoordinates)
				coordinates.GET("/export", h.Coordinate.ExportCoordinates)
				coordinates.GET("/search/location", h.Coordinate.SearchByLocation)
				coordinates.GET("/search/nearby", h.Coordinate.GetNearby)
				coordinates.GET("/:id", h.Coordinate.GetCoordinate)
			}

			planes := authorized.Group("/planes")
			{
				planes.GET("", h.Plane.ListPlanes)
				planes.GET("/:id", h.Plane.GetPlane)
			}

			news := authorized.Group("/news")
			{
				news.GET("", h.News.Latest)
				news.GET("/all", h.News.All)
				news.POST("", h.News.Create)
				news.GET("/:id", h.News.Get)
				news.PUT("/:id", h.News.Update)
				news.PATCH("/:id", h.News.Update)
				news.DELETE("/:id", h.News.Delete)
			}
		}
	}

	return r
}
