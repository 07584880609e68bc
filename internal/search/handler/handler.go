package handler

import (
	"context"
	"net/http"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/ports"
	listingtransport "autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/internal/search/service"
	"autotradespot_backend/internal/search/transport"
	"autotradespot_backend/platform/httpkit"
	"autotradespot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// ImageLinker signs image links for result cards.
type ImageLinker interface {
	ImageURLs(ctx context.Context, images []domain.Image) map[uuid.UUID]ports.ImageURLs
}

type Handler struct {
	svc    *service.Service
	images ImageLinker
	val    *validator.Validator
}

func New(svc *service.Service, images ImageLinker, val *validator.Validator) *Handler {
	return &Handler{svc: svc, images: images, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Search)
	rg.GET("/filters", h.Filters)
}

func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	results, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	var viewer *uuid.UUID
	if identity := httpkit.GetIdentity(c); identity.IsAuthenticated() {
		id := identity.UserID()
		viewer = &id
	}
	urls := h.images.ImageURLs(c.Request.Context(), listingtransport.Images(results))
	httpkit.OK(c, listingtransport.ToListingList(results, urls, viewer))
}

func (h *Handler) Filters(c *gin.Context) {
	httpkit.OK(c, h.svc.Filters())
}
