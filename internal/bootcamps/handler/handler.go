package handler

import (
	"net/http"
	"strconv"

	"bootcamp_directory_backend/internal/bootcamps/service"
	"bootcamp_directory_backend/internal/bootcamps/transport"
	"bootcamp_directory_backend/platform/httpkit"
	"bootcamp_directory_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid bootcamp ID"
)

// Handler handles HTTP requests for bootcamps.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves bootcamps with filtering, selection, sorting and
// pagination taken from the query string.
// GET /api/v1/bootcamps
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Request.URL.Query())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusOK, result)
}

// Get retrieves a single bootcamp.
// GET /api/v1/bootcamps/:id
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

// Create registers a new bootcamp owned by the caller.
// POST /api/v1/bootcamps
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), identity.Role(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Update modifies a bootcamp owned by the caller.
// PUT /api/v1/bootcamps/:id
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

	var req transport.UpdateBootcampRequest
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

// Delete removes a bootcamp and everything attached to it.
// DELETE /api/v1/bootcamps/:id
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

// WithinRadius finds bootcamps around a zipcode. Distance is in miles
// unless ?units=km.
// GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *Handler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid distance")
		return
	}

	result, err := h.svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance, c.Query("units"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OKCount(c, len(result), result)
}

// UploadPhoto stores a photo for a bootcamp owned by the caller.
// PUT /api/v1/bootcamps/:id/photo
func (h *Handler) UploadPhoto(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "please upload a file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "please upload a file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	filename, err := h.svc.UploadPhoto(c.Request.Context(), identity.UserID(), identity.Role(), id, service.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"photo": filename})
}
