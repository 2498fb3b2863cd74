// Package courses provides the course catalog bounded context module.
package courses

import (
	"bootcamp_directory_backend/internal/courses/handler"
	"bootcamp_directory_backend/internal/courses/ports"
	"bootcamp_directory_backend/internal/courses/repository"
	"bootcamp_directory_backend/internal/courses/service"
	"bootcamp_directory_backend/internal/events"
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the courses bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the courses module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bootcamps ports.BootcampProvider, users ports.UserProvider, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, pool, bootcamps, users, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "courses"
}

// RegisterRoutes mounts course routes, including the nested routes
// under /bootcamps/:id.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	publish := httpkit.RequireRoles("publisher", "admin")

	rg := ctx.V1.Group("/courses")
	rg.GET("", m.handler.List)
	rg.GET("/:id", m.handler.Get)
	rg.PUT("/:id", ctx.Auth, publish, m.handler.Update)
	rg.DELETE("/:id", ctx.Auth, publish, m.handler.Delete)

	// The wildcard name must match the bootcamps module's /:id routes.
	nested := ctx.V1.Group("/bootcamps/:id/courses")
	nested.GET("", m.handler.ListByBootcamp)
	nested.POST("", ctx.Auth, publish, m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
