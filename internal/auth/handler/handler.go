package handler

import (
	"net/http"

	"bootcamp_directory_backend/internal/auth/service"
	"bootcamp_directory_backend/internal/auth/transport"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
	cfg config.CookieConfig
	val *validator.Validator
}

func New(svc *service.Service, cfg config.CookieConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cfg: cfg, val: val}
}

// Register creates a new account and signs the caller in.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	signed, _, err := h.svc.Register(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	h.sendTokenResponse(c, http.StatusCreated, signed)
}

// Login exchanges credentials for a session token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "please provide an email and password")
		return
	}

	signed, _, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	h.sendTokenResponse(c, http.StatusOK, signed)
}

// Logout clears the session cookie. The JWT itself stays valid until
// expiry; clients must also drop their stored copy.
// GET /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.GetCookieName(), "none", 10, "/", "", h.cfg.GetCookieSecure(), true)
	httpkit.OK(c, gin.H{})
}

// GetMe returns the authenticated user.
// GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	user, err := h.svc.GetMe(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}

// UpdateDetails changes the caller's name and/or email.
// PUT /api/v1/auth/updatedetails
func (h *Handler) UpdateDetails(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	user, err := h.svc.UpdateDetails(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}

// UpdatePassword rotates the caller's password and issues a new token.
// PUT /api/v1/auth/updatepassword
func (h *Handler) UpdatePassword(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	signed, err := h.svc.UpdatePassword(c.Request.Context(), identity.UserID(), req.CurrentPassword, req.NewPassword)
	if httpkit.HandleError(c, err) {
		return
	}
	h.sendTokenResponse(c, http.StatusOK, signed)
}

// ForgotPassword emails a reset link. Responds 200 regardless of
// whether the address is registered.
// POST /api/v1/auth/forgotpassword
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req transport.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "email sent"})
}

// ResetPassword consumes an emailed token and signs the user in.
// PUT /api/v1/auth/resetpassword/:resettoken
func (h *Handler) ResetPassword(c *gin.Context) {
	var req transport.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	signed, _, err := h.svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	h.sendTokenResponse(c, http.StatusOK, signed)
}

// sendTokenResponse sets the session cookie and returns the flat
// {success, token} body.
func (h *Handler) sendTokenResponse(c *gin.Context, status int, signed string) {
	maxAge := int(h.cfg.GetJWTExpire().Seconds())
	c.SetCookie(h.cfg.GetCookieName(), signed, maxAge, "/", "", h.cfg.GetCookieSecure(), true)
	httpkit.JSON(c, status, transport.TokenResponse{Success: true, Token: signed})
}
