package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autotradespot_backend/internal/catalog/service"
	"autotradespot_backend/internal/catalog/transport"
	"autotradespot_backend/platform/httpkit"
	"autotradespot_backend/platform/validator"
)

// Handler handles HTTP requests for the car catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListMakes returns all makes ordered by name.
// GET /api/v1/car/makes
func (h *Handler) ListMakes(c *gin.Context) {
	makes, err := h.svc.ListMakes(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.MakeResponse, 0, len(makes))
	for _, m := range makes {
		out = append(out, transport.MakeResponse{ID: m.ID, Name: m.Name})
	}
	httpkit.OK(c, out)
}

// ListModels returns models, optionally restricted to one make.
// GET /api/v1/car/models?make=
func (h *Handler) ListModels(c *gin.Context) {
	var req transport.ListModelsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	var makeID *int
	if req.Make > 0 {
		makeID = &req.Make
	}

	models, err := h.svc.ListModels(c.Request.Context(), makeID)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, transport.ModelResponse{ID: m.ID, MakeID: m.MakeID, Name: m.Name})
	}
	httpkit.OK(c, out)
}

// ListOptions returns all car options.
// GET /api/v1/car/options
func (h *Handler) ListOptions(c *gin.Context) {
	options, err := h.svc.ListOptions(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.OptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, transport.OptionResponse{ID: o.ID, Name: o.Name})
	}
	httpkit.OK(c, out)
}
