// Package users provides the administrative user management module.
package users

import (
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/internal/users/handler"
	"bootcamp_directory_backend/internal/users/repository"
	"bootcamp_directory_backend/internal/users/service"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the users module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, pool, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// RegisterRoutes mounts the user management routes. Every route
// requires the admin role.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/users", ctx.Auth, httpkit.RequireRoles("admin"))
	rg.GET("", m.handler.List)
	rg.POST("", m.handler.Create)
	rg.GET("/:id", m.handler.Get)
	rg.PUT("/:id", m.handler.Update)
	rg.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
