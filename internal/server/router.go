package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"access-denied-lite/internal/config"
	"access-denied-lite/internal/handler"
	"access-denied-lite/internal/metrics"
	"access-denied-lite/internal/middleware"
	"access-denied-lite/internal/service"
	"access-denied-lite/internal/upstream"
)

type Deps struct {
	Config   config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Identity service.IdentityFetcher
	Users    service.UserResolver
	History  handler.LoginHistoryFetcher
	Limiter  *middleware.RateLimiter
}

// Wire builds the upstream client and the services on top of it.
func Wire(cfg config.Config, log zerolog.Logger, m *metrics.Metrics) Deps {
	client := upstream.New(cfg, log, m)
	users := service.NewAggregator(client, client, log)

	return Deps{
		Config:   cfg,
		Logger:   log,
		Metrics:  m,
		Identity: client,
		Users:    users,
		History:  service.NewHistoryReporter(users, client, log),
		Limiter:  middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
	}
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/api")
	if deps.Limiter != nil {
		api.Use(middleware.RateLimitMiddleware(deps.Limiter, deps.Logger))
	}
	api.Use(middleware.ExtractAssertion())

	userDetailsHandler := &handler.UserDetailsHandler{Users: deps.Users, Metrics: deps.Metrics}
	api.GET("/userdetails", userDetailsHandler.Get)

	historyHandler := &handler.HistoryHandler{History: deps.History, Metrics: deps.Metrics}
	api.GET("/history", historyHandler.Get)

	debugHandler := &handler.DebugHandler{Enabled: deps.Config.Debug, Identity: deps.Identity, Metrics: deps.Metrics}
	api.GET("/debug", debugHandler.Get)

	envHandler := &handler.EnvHandler{Config: deps.Config}
	api.GET("/env", envHandler.Get)
	api.POST("/env", envHandler.MethodNotAllowed)

	return r
}
