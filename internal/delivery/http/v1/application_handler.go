package v1

import (
	"net/http"

	"go-careers-cms/internal/delivery/http/middleware"
	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/security"
	"go-careers-cms/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(public, staff *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := public.Group("/applications")
	{
		uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())
		apps.POST("/apply", uploadLimiter, handler.Apply)
		apps.POST("/apply-general", uploadLimiter, handler.ApplyGeneral)
		apps.GET("/", handler.ListAll)
		apps.GET("/:id", handler.Get)
	}

	protected := staff.Group("/applications")
	{
		protected.GET("/byjob/:id", handler.ListByCareer)
		protected.PATCH("/:id/status", handler.UpdateStatus)
		protected.DELETE("/:id", handler.Delete)
		protected.POST("/bulk-delete", handler.BulkDelete)
	}
}

// ApplyRequest carries the multipart fields of a submission. Field presence
// itself is enforced downstream, so tags only cover formats.
type ApplyRequest struct {
	CareerID string `form:"careerId"`
	FullName string `form:"fullName"`
	Email    string `form:"email" binding:"omitempty,email"`
	Phone    string `form:"phone" binding:"omitempty,valid_phone"`
}

// Apply submits an application for a specific career. Multipart form with a
// required cv file.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	cv, err := formUpload(c, "cv", security.DocumentMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}
	if req.CareerID == "" {
		c.Error(apperror.BadRequest("Career ID is required"))
		return
	}

	app, err := h.applicationUC.Submit(c.Request.Context(), domain.SubmitApplicationInput{
		CareerID: req.CareerID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		CV:       cv,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// ApplyGeneral submits a spontaneous application with no career reference.
func (h *ApplicationHandler) ApplyGeneral(c *gin.Context) {
	cv, err := formUpload(c, "cv", security.DocumentMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	input := domain.SubmitApplicationInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		CV:       cv,
	}

	app, err := h.applicationUC.Submit(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

func (h *ApplicationHandler) ListAll(c *gin.Context) {
	apps, err := h.applicationUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

func (h *ApplicationHandler) ListByCareer(c *gin.Context) {
	apps, err := h.applicationUC.ListByCareer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	detail, err := h.applicationUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", detail)
}

// UpdateStatusRequest is the request payload for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status is required"))
		return
	}

	app, err := h.applicationUC.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated", app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.applicationUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application deleted", nil)
}

// BulkDeleteRequest is the request payload for bulk deletion
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *ApplicationHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid IDs provided"))
		return
	}

	deleted, err := h.applicationUC.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications deleted", gin.H{"deleted_count": deleted})
}
