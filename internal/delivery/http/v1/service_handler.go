package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/security"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	serviceUC domain.ServiceUsecase
}

// NewServiceHandler registers service catalog routes
func NewServiceHandler(public, admin *gin.RouterGroup, serviceUC domain.ServiceUsecase) {
	handler := &ServiceHandler{serviceUC: serviceUC}

	services := public.Group("/services")
	{
		services.GET("", handler.List)
		services.GET("/english", handler.ListEnglish)
		services.GET("/arabic", handler.ListArabic)
		services.GET("/:id", handler.Get)
		services.POST("/:id/reviews", handler.AddReview)
	}

	protected := admin.Group("/services")
	{
		protected.POST("", handler.Create)
		protected.PUT("/:id", handler.UpdateHeader)
		protected.POST("/:id/items", handler.AddItem)
		protected.PUT("/:id/items/:itemId", handler.UpdateItem)
		protected.DELETE("/:id/items/:itemId", handler.DeleteItem)
		protected.DELETE("/:id", handler.Delete)
		protected.POST("/bulk-delete", handler.BulkDelete)
	}
}

// bindDataField decodes the JSON carried in the multipart "data" field.
// Write endpoints mix structured fields with file uploads, so the payload
// travels as one JSON document next to the files.
func bindDataField(c *gin.Context, out any) error {
	raw := c.PostForm("data")
	if raw == "" {
		return apperror.BadRequest("data field is required")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apperror.BadRequest("data field is not valid JSON")
	}
	return nil
}

// ServiceItemPayload carries one item of a create/add request.
type ServiceItemPayload struct {
	Title       domain.Localized `json:"title"`
	Category    domain.Localized `json:"category"`
	Description domain.Localized `json:"description"`
	Order       int              `json:"order"`
}

// CreateServiceRequest is the JSON payload of the section create endpoint.
type CreateServiceRequest struct {
	Header struct {
		Title       domain.Localized `json:"title"`
		Subtitle    domain.Localized `json:"subtitle"`
		Description domain.Localized `json:"description"`
	} `json:"header"`
	IsActive *bool                `json:"isActive"`
	Services []ServiceItemPayload `json:"services"`
}

// Create accepts a multipart form: a "data" JSON field, an optional
// "headerImage" file, and one "itemImages" file per item, in item order.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := bindDataField(c, &req); err != nil {
		c.Error(err)
		return
	}

	headerImage, err := formUpload(c, "headerImage", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}
	itemImages, err := formUploads(c, "itemImages", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.CreateSectionInput{
		Header: domain.ServiceHeader{
			Title:       req.Header.Title,
			Subtitle:    req.Header.Subtitle,
			Description: req.Header.Description,
		},
		IsActive:    req.IsActive,
		ItemImages:  itemImages,
		HeaderImage: headerImage,
	}
	for _, item := range req.Services {
		input.Items = append(input.Items, domain.ServiceItemInput{
			Title:       item.Title,
			Category:    item.Category,
			Description: item.Description,
			Order:       item.Order,
		})
	}

	section, err := h.serviceUC.CreateSection(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Service section created", section)
}

func (h *ServiceHandler) List(c *gin.Context) {
	sections, err := h.serviceUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Services retrieved", sections)
}

func (h *ServiceHandler) ListEnglish(c *gin.Context) {
	views, err := h.serviceUC.ListByLanguage(c.Request.Context(), "en")
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Services retrieved", views)
}

func (h *ServiceHandler) ListArabic(c *gin.Context) {
	views, err := h.serviceUC.ListByLanguage(c.Request.Context(), "ar")
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Services retrieved", views)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	section, err := h.serviceUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service retrieved", section)
}

// UpdateHeaderRequest carries partial header updates.
type UpdateHeaderRequest struct {
	Title       *domain.Localized `json:"title"`
	Subtitle    *domain.Localized `json:"subtitle"`
	Description *domain.Localized `json:"description"`
	IsActive    *bool             `json:"isActive"`
}

func (h *ServiceHandler) UpdateHeader(c *gin.Context) {
	var req UpdateHeaderRequest
	if err := bindDataField(c, &req); err != nil {
		c.Error(err)
		return
	}

	image, err := formUpload(c, "image", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	section, err := h.serviceUC.UpdateHeader(c.Request.Context(), c.Param("id"), domain.UpdateServiceHeaderInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, image)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service section updated", section)
}

func (h *ServiceHandler) AddItem(c *gin.Context) {
	var req ServiceItemPayload
	if err := bindDataField(c, &req); err != nil {
		c.Error(err)
		return
	}

	image, err := formUpload(c, "image", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	section, err := h.serviceUC.AddItem(c.Request.Context(), c.Param("id"), domain.ServiceItemInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Order:       req.Order,
	}, image)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Service item added", section)
}

// UpdateItemRequest carries partial item updates.
type UpdateItemRequest struct {
	Title       *domain.Localized `json:"title"`
	Category    *domain.Localized `json:"category"`
	Description *domain.Localized `json:"description"`
	Order       *int              `json:"order"`
}

func (h *ServiceHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := bindDataField(c, &req); err != nil {
		c.Error(err)
		return
	}

	image, err := formUpload(c, "image", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	section, err := h.serviceUC.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), domain.UpdateServiceItemInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Order:       req.Order,
	}, image)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service item updated", section)
}

func (h *ServiceHandler) DeleteItem(c *gin.Context) {
	section, err := h.serviceUC.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service item deleted", section)
}

// AddReview accepts a multipart form with authorName, rating and body
// fields plus optional screenshot files.
func (h *ServiceHandler) AddReview(c *gin.Context) {
	rating, err := strconv.ParseFloat(c.PostForm("rating"), 64)
	if err != nil {
		c.Error(apperror.BadRequest("Rating must be a number"))
		return
	}

	screenshots, err := formUploads(c, "screenshots", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	review, err := h.serviceUC.AddReview(c.Request.Context(), c.Param("id"), domain.ReviewInput{
		AuthorName:  c.PostForm("authorName"),
		Rating:      rating,
		Body:        c.PostForm("body"),
		Screenshots: screenshots,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Review added", review)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.serviceUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service section deleted", nil)
}

func (h *ServiceHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid IDs provided"))
		return
	}

	deleted, err := h.serviceUC.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Service sections deleted", gin.H{"deleted_count": deleted})
}
