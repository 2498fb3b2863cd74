// Package reviews provides the bootcamp review bounded context module.
package reviews

import (
	"bootcamp_directory_backend/internal/events"
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/internal/reviews/handler"
	"bootcamp_directory_backend/internal/reviews/ports"
	"bootcamp_directory_backend/internal/reviews/repository"
	"bootcamp_directory_backend/internal/reviews/service"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the reviews bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the reviews module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bootcamps ports.BootcampProvider, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, pool, bootcamps, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reviews"
}

// RegisterRoutes mounts review routes, including the nested routes
// under /bootcamps/:id. Reviews are written by end users, not
// publishers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	review := httpkit.RequireRoles("user", "admin")

	rg := ctx.V1.Group("/reviews")
	rg.GET("", m.handler.List)
	rg.GET("/:id", m.handler.Get)
	rg.PUT("/:id", ctx.Auth, review, m.handler.Update)
	rg.DELETE("/:id", ctx.Auth, review, m.handler.Delete)

	// The wildcard name must match the bootcamps module's /:id routes.
	nested := ctx.V1.Group("/bootcamps/:id/reviews")
	nested.GET("", m.handler.ListByBootcamp)
	nested.POST("", ctx.Auth, review, m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
