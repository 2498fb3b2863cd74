// Package bootcamps provides the bootcamp bounded context module.
package bootcamps

import (
	"bootcamp_directory_backend/internal/bootcamps/handler"
	"bootcamp_directory_backend/internal/bootcamps/repository"
	"bootcamp_directory_backend/internal/bootcamps/service"
	"bootcamp_directory_backend/internal/events"
	"bootcamp_directory_backend/internal/geocoder"
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/internal/storage"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the bootcamps bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the bootcamps module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, geo geocoder.Geocoder, store storage.PhotoStore, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, pool, geo, store, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "bootcamps"
}

// Service returns the bootcamps service for use by adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts bootcamp routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/bootcamps")

	rg.GET("", m.handler.List)
	rg.GET("/radius/:zipcode/:distance", m.handler.WithinRadius)
	rg.GET("/:id", m.handler.Get)

	publish := httpkit.RequireRoles("publisher", "admin")
	rg.POST("", ctx.Auth, publish, m.handler.Create)
	rg.PUT("/:id", ctx.Auth, publish, m.handler.Update)
	rg.DELETE("/:id", ctx.Auth, publish, m.handler.Delete)
	rg.PUT("/:id/photo", ctx.Auth, publish, m.handler.UploadPhoto)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
