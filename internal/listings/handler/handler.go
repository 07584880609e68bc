package handler

import (
	"net/http"
	"time"

	"autotradespot_backend/internal/listings/service"
	"autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/platform/httpkit"
	"autotradespot_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidListingID = "invalid listing id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes mounts routes reachable without signing in.
// contactLimit throttles outgoing contact mails per client.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, contactLimit gin.HandlerFunc) {
	rg.GET("/listings/types", h.Types)
	rg.GET("/listings/latest", h.Latest)
	rg.GET("/listings/:id", h.View)
	rg.GET("/listings/:id/contact", h.ContactForm)
	rg.POST("/listings/:id/contact", contactLimit, h.Contact)
}

// RegisterAdminRoutes mounts staff-only moderation routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings/:id/approve", h.Approve)
}

// RegisterProtectedRoutes mounts routes that require a signed-in user.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/listings/draft", h.SaveDraft)
	rg.POST("/listings/:id/favourite", h.ToggleFavourite)
	rg.POST("/listings/:id/actions", h.ApplyAction)
	rg.POST("/listings/:id/modify", h.Modify)
	rg.POST("/listings/:id/report", h.Report)
	rg.DELETE("/listings/:id", h.DeletePermanent)
	rg.GET("/users/me/listings", h.MyListings)
	rg.GET("/users/me/favourites", h.MyFavourites)
}

func (h *Handler) Types(c *gin.Context) {
	httpkit.OK(c, transport.NewTypesResponse(time.Now()))
}

func (h *Handler) Latest(c *gin.Context) {
	listings, err := h.svc.Latest(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	urls := h.svc.ImageURLs(c.Request.Context(), transport.Images(listings))
	httpkit.OK(c, transport.ToListingList(listings, urls, viewerID(c)))
}

func (h *Handler) View(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	viewer := viewerFrom(c)

	l, err := h.svc.View(c.Request.Context(), id, viewer, session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ToListingResponse(l, h.svc.ImageURLs(c.Request.Context(), l.Images), viewerID(c))
	if viewer != nil {
		fav, err := h.svc.IsFavourite(c.Request.Context(), l.ID, viewer.UserID)
		if httpkit.HandleError(c, err) {
			return
		}
		resp.IsFavourite = fav
	}
	httpkit.OK(c, resp)
}

func (h *Handler) ContactForm(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	form, err := h.svc.ContactDefaults(c.Request.Context(), id, viewerFrom(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ContactFormResponse{
		ListingID: id.String(),
		FromEmail: form.FromEmail,
		Subject:   form.Subject,
		Message:   form.Message,
	})
}

func (h *Handler) Contact(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req transport.ContactRequest
	if !h.bind(c, &req) {
		return
	}

	err := h.svc.Contact(c.Request.Context(), id, viewerFrom(c), service.ContactForm{
		FromEmail: req.FromEmail,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: service.ContactSentMessage})
}

func (h *Handler) SaveDraft(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	var req transport.DraftRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.SaveDraft(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	uid := identity.UserID()
	resp := transport.DraftResponse{
		Listing:      transport.ToListingResponse(result.Listing, nil, &uid),
		SoftFailures: make([]transport.SoftFailureResponse, 0, len(result.SoftFailures)),
	}
	for _, f := range result.SoftFailures {
		resp.SoftFailures = append(resp.SoftFailures, transport.SoftFailureResponse{Part: f.Part, Message: f.Message, Details: f.Details})
	}
	httpkit.Created(c, resp)
}

func (h *Handler) ToggleFavourite(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	viewer := requireViewer(c)
	if viewer == nil {
		return
	}

	fav, err := h.svc.ToggleFavourite(c.Request.Context(), id, *viewer)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FavouriteResponse{ListingID: id.String(), Favourite: fav})
}

func (h *Handler) ApplyAction(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req transport.ActionRequest
	if !h.bind(c, &req) {
		return
	}

	l, err := h.svc.ApplyOwnerAction(c.Request.Context(), id, identity.UserID(), service.Action(req.Action))
	if httpkit.HandleError(c, err) {
		return
	}
	uid := identity.UserID()
	httpkit.OK(c, transport.ToListingResponse(l, h.svc.ImageURLs(c.Request.Context(), l.Images), &uid))
}

func (h *Handler) Modify(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := listingID(c)
	if !ok {
		return
	}
	if err := h.svc.Modify(c.Request.Context(), identity.UserID(), id, session.ID(c)); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: "listing loaded for editing"})
}

func (h *Handler) Report(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	viewer := requireViewer(c)
	if viewer == nil {
		return
	}
	if err := h.svc.Report(c.Request.Context(), id, *viewer); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: "listing reported"})
}

func (h *Handler) DeletePermanent(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	viewer := requireViewer(c)
	if viewer == nil {
		return
	}
	if err := h.svc.DeletePermanent(c.Request.Context(), id, *viewer); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	viewer := requireViewer(c)
	if viewer == nil {
		return
	}
	l, err := h.svc.Approve(c.Request.Context(), id, *viewer)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToListingResponse(l, h.svc.ImageURLs(c.Request.Context(), l.Images), nil))
}

func (h *Handler) MyListings(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	listings, err := h.svc.ListByOwner(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	uid := identity.UserID()
	urls := h.svc.ImageURLs(c.Request.Context(), transport.Images(listings))
	httpkit.OK(c, transport.ToListingList(listings, urls, &uid))
}

func (h *Handler) MyFavourites(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	listings, err := h.svc.ListFavourites(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	uid := identity.UserID()
	urls := h.svc.ImageURLs(c.Request.Context(), transport.Images(listings))
	resp := transport.ToListingList(listings, urls, &uid)
	for i := range resp.Items {
		resp.Items[i].IsFavourite = true
	}
	httpkit.OK(c, resp)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func listingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListingID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func viewerFrom(c *gin.Context) *service.Viewer {
	identity := httpkit.GetIdentity(c)
	if !identity.IsAuthenticated() {
		return nil
	}
	return &service.Viewer{UserID: identity.UserID(), Staff: identity.IsStaff()}
}

func requireViewer(c *gin.Context) *service.Viewer {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return nil
	}
	return &service.Viewer{UserID: identity.UserID(), Staff: identity.IsStaff()}
}

func viewerID(c *gin.Context) *uuid.UUID {
	if v := viewerFrom(c); v != nil {
		return &v.UserID
	}
	return nil
}

