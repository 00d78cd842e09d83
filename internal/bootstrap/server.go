package bootstrap

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skyfare/ticketapi/api"
	"github.com/skyfare/ticketapi/config"
	"github.com/skyfare/ticketapi/internal/ratelimit"
)

const shutdownTimeout = 10 * time.Second

// NewRouter assembles the middleware chain and routes. Order matters:
// recovery wraps everything, the request id must exist before logging,
// and rate limiting runs before auth so rejected floods never reach the
// key check. /health stays outside the auth group.
func NewRouter(cfg *config.Config, handler *api.TicketHandler, limiter *ratelimit.Limiter, logger *log.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		api.Recover(logger),
		api.RequestID(),
		api.RequestLogger(logger),
		api.RateLimit(limiter),
	)

	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, api.APIKeyHeader)
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/health", handler.Health)

	protected := engine.Group("/tickets", api.APIKeyAuth(cfg.Auth.APIKey))
	handler.Register(protected)

	return engine
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, engine *gin.Engine) error {
	server := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
