package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	listingports "autotradespot_backend/internal/listings/ports"
	listingtransport "autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/internal/session"
	"autotradespot_backend/internal/wizard/service"
	"autotradespot_backend/internal/wizard/transport"
	"autotradespot_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidImageID = "invalid image id"
	maxUploadMemory   = 32 << 20
	imageField        = "image"
)

// Handler serves the listing wizard. Every route acts on the draft of the
// caller's browsing session.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.State)
	rg.DELETE("", h.Cancel)
	rg.GET("/plate", h.PlateForm)
	rg.POST("/plate", h.SubmitPlate)
	rg.GET("/type", h.TypeForm)
	rg.POST("/type", h.SubmitType)
	rg.GET("/pricing-form", h.PricingForm)
	rg.GET("/make", h.MakeForm)
	rg.POST("/make", h.SubmitMake)
	rg.GET("/details", h.DetailsForm)
	rg.POST("/details", h.SubmitDetails)
	rg.GET("/images", h.Images)
	rg.POST("/images", h.AddImages)
	rg.DELETE("/images/:imageId", h.DeleteImage)
	rg.GET("/preview", h.Preview)
	rg.PUT("/finalize/:mode", h.Finalize)
}

func (h *Handler) State(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	resp, err := h.svc.State(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), session.ID(c)); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PlateForm(c *gin.Context) {
	resp, err := h.svc.PlateForm(c.Request.Context(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SubmitPlate(c *gin.Context) {
	var req transport.PlateRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.svc.SubmitPlate(c.Request.Context(), session.ID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) TypeForm(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	resp, err := h.svc.TypeForm(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SubmitType(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	var req transport.TypeRequest
	if !bind(c, &req) {
		return
	}

	resp, err := h.svc.SubmitType(c.Request.Context(), identity.UserID(), session.ID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) PricingForm(c *gin.Context) {
	form, ok := service.PricingForm(c.Query("type"))
	if !ok {
		// An empty body tells the client to clear the pricing inputs.
		c.Status(http.StatusNoContent)
		return
	}
	httpkit.OK(c, form)
}

func (h *Handler) MakeForm(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	resp, err := h.svc.MakeForm(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SubmitMake(c *gin.Context) {
	var req transport.MakeRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.svc.SubmitMake(c.Request.Context(), session.ID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) DetailsForm(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	resp, err := h.svc.DetailsForm(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SubmitDetails(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	var req transport.DetailsRequest
	if !bind(c, &req) {
		return
	}
	resp, err := h.svc.SubmitDetails(c.Request.Context(), identity.UserID(), session.ID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Images(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	resp, err := h.svc.ImagesStep(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) AddImages(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "unable to parse form data", nil)
		return
	}

	files, closers, err := collectImages(c.Request.MultipartForm)
	defer closeAll(closers)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	resp, err := h.svc.AddImages(c.Request.Context(), identity.UserID(), session.ID(c), files)
	if httpkit.HandleError(c, err) {
		return
	}
	if len(files) == 0 {
		httpkit.OK(c, resp)
		return
	}
	httpkit.Created(c, resp)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidImageID, nil)
		return
	}
	resp, err := h.svc.DeleteImage(c.Request.Context(), identity.UserID(), session.ID(c), imageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Preview(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	l, urls, err := h.svc.Preview(c.Request.Context(), identity.UserID(), session.ID(c))
	if httpkit.HandleError(c, err) {
		return
	}
	uid := identity.UserID()
	httpkit.OK(c, listingtransport.ToListingResponse(l, urls, &uid))
}

func (h *Handler) Finalize(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.Finalize(c.Request.Context(), identity.UserID(), session.ID(c), c.Param("mode"))
	if httpkit.HandleError(c, err) {
		return
	}
	uid := identity.UserID()
	reasons := result.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	httpkit.OK(c, transport.FinalizeResponse{
		Listing: listingtransport.ToListingResponse(result.Listing, nil, &uid),
		Posted:  result.Posted,
		Reasons: reasons,
	})
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	return true
}

func collectImages(form *multipart.Form) ([]listingports.UploadedImage, []io.Closer, error) {
	if form == nil {
		return nil, nil, nil
	}
	var (
		files   []listingports.UploadedImage
		closers []io.Closer
	)
	for _, fh := range form.File[imageField] {
		f, err := fh.Open()
		if err != nil {
			return nil, closers, err
		}
		closers = append(closers, f)
		files = append(files, listingports.UploadedImage{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}
	return files, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
