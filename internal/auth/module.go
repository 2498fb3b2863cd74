// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"bootcamp_directory_backend/internal/auth/handler"
	"bootcamp_directory_backend/internal/auth/repository"
	"bootcamp_directory_backend/internal/auth/service"
	"bootcamp_directory_backend/internal/email"
	"bootcamp_directory_backend/internal/events"
	apphttp "bootcamp_directory_backend/internal/http"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/logger"
	"bootcamp_directory_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, mail email.Sender, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, mail, log)
	h := handler.New(svc, cfg, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/auth")
	rg.Use(ctx.AuthRateLimiter.RateLimit())

	rg.POST("/register", m.handler.Register)
	rg.POST("/login", m.handler.Login)
	rg.GET("/logout", m.handler.Logout)
	rg.POST("/forgotpassword", m.handler.ForgotPassword)
	rg.PUT("/resetpassword/:resettoken", m.handler.ResetPassword)

	rg.GET("/me", ctx.Auth, m.handler.GetMe)
	rg.PUT("/updatedetails", ctx.Auth, m.handler.UpdateDetails)
	rg.PUT("/updatepassword", ctx.Auth, m.handler.UpdatePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
