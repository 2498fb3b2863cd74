package handler

import (
	"net/http"

	"bootcamp_directory_backend/internal/courses/service"
	"bootcamp_directory_backend/internal/courses/transport"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid course ID"
	msgInvalidBootcamp  = "invalid bootcamp ID"
)

// Handler handles HTTP requests for courses.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves courses with filtering, selection, sorting and
// pagination taken from the query string.
// GET /api/v1/courses
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Request.URL.Query())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusOK, result)
}

// ListByBootcamp retrieves one bootcamp's courses.
// GET /api/v1/bootcamps/:id/courses
func (h *Handler) ListByBootcamp(c *gin.Context) {
	bootcampID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBootcamp)
		return
	}

	result, err := h.svc.ListByBootcamp(c.Request.Context(), bootcampID, c.Request.URL.Query())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusOK, result)
}

// Get retrieves a single course.
// GET /api/v1/courses/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create attaches a course to a bootcamp owned by the caller.
// POST /api/v1/bootcamps/:id/courses
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	bootcampID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBootcamp)
		return
	}

	var req transport.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), identity.Role(), bootcampID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Update modifies a course owned by the caller.
// PUT /api/v1/courses/:id
func (h *Handler) Update(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req transport.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Update(c.Request.Context(), identity.UserID(), identity.Role(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a course owned by the caller.
// DELETE /api/v1/courses/:id
func (h *Handler) Delete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), identity.UserID(), identity.Role(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{})
}
