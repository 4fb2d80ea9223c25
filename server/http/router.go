package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"lookup-service/internal/config"
	lookupHnd "lookup-service/internal/lookup/handler"
	"lookup-service/internal/lookup/model"
	"lookup-service/internal/middleware"
	"lookup-service/server/http/handlers"
)

func NewRouter(cfg config.Config, schema model.Schema, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	// nearest | tolerance
	r.Post("/lookup/{mode}", lookupHnd.Lookup(cfg, schema, logger))

	return r
}
