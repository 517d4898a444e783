package v1

import (
	"net/http"
	"strconv"

	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/validation"

	"github.com/gin-gonic/gin"
)

type CareerHandler struct {
	careerUC domain.CareerUsecase
}

// NewCareerHandler registers career routes
func NewCareerHandler(public, admin *gin.RouterGroup, careerUC domain.CareerUsecase) {
	handler := &CareerHandler{careerUC: careerUC}

	careers := public.Group("/careers")
	{
		careers.GET("", handler.List)
		careers.GET("/english", handler.ListEnglish)
		careers.GET("/arabic", handler.ListArabic)
		careers.GET("/:id", handler.Get)
	}

	protected := admin.Group("/careers")
	{
		protected.POST("", handler.Create)
		protected.PUT("/:id", handler.Update)
		protected.PATCH("/:id/toggle", handler.ToggleActive)
		protected.DELETE("/:id", handler.Delete)
		protected.POST("/bulk-delete", handler.BulkDelete)
	}
}

// CareerRequest is the request payload for creating a career. The
// responsibilities and requirements fields accept free text; each line
// becomes a list entry.
type CareerRequest struct {
	Title            domain.Localized `json:"title" binding:"required"`
	Department       domain.Localized `json:"department" binding:"required"`
	Location         domain.Localized `json:"location" binding:"required"`
	EmploymentType   domain.Localized `json:"employmentType" binding:"required"`
	ShortDescription domain.Localized `json:"shortDescription"`
	Description      domain.Localized `json:"description"`
	Responsibilities domain.Localized `json:"responsibilities"`
	Requirements     domain.Localized `json:"requirements"`
	Order            int              `json:"order"`
}

func (h *CareerHandler) Create(c *gin.Context) {
	var req CareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	career := &domain.Career{
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		EmploymentType:   req.EmploymentType,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Responsibilities: domain.LocalizedList{
			En: domain.SplitLines(req.Responsibilities.En),
			Ar: domain.SplitLines(req.Responsibilities.Ar),
		},
		Requirements: domain.LocalizedList{
			En: domain.SplitLines(req.Requirements.En),
			Ar: domain.SplitLines(req.Requirements.Ar),
		},
		Order: req.Order,
	}

	created, err := h.careerUC.Create(c.Request.Context(), career)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Career created successfully", created)
}

func (h *CareerHandler) List(c *gin.Context) {
	filter := domain.CareerFilter{
		Department:     c.Query("department"),
		Location:       c.Query("location"),
		EmploymentType: c.Query("employmentType"),
		Lang:           c.DefaultQuery("lang", "en"),
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.BadRequest("isActive must be true or false"))
			return
		}
		filter.IsActive = &active
	}

	careers, err := h.careerUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Careers retrieved", careers)
}

func (h *CareerHandler) ListEnglish(c *gin.Context) {
	views, err := h.careerUC.ListByLanguage(c.Request.Context(), "en")
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Careers retrieved", views)
}

func (h *CareerHandler) ListArabic(c *gin.Context) {
	views, err := h.careerUC.ListByLanguage(c.Request.Context(), "ar")
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Careers retrieved", views)
}

func (h *CareerHandler) Get(c *gin.Context) {
	career, err := h.careerUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Career retrieved", career)
}

// UpdateCareerRequest carries partial career updates; absent fields stay
// untouched.
type UpdateCareerRequest struct {
	Title            *domain.Localized `json:"title"`
	Department       *domain.Localized `json:"department"`
	Location         *domain.Localized `json:"location"`
	EmploymentType   *domain.Localized `json:"employmentType"`
	ShortDescription *domain.Localized `json:"shortDescription"`
	Description      *domain.Localized `json:"description"`
	Responsibilities *domain.Localized `json:"responsibilities"`
	Requirements     *domain.Localized `json:"requirements"`
	IsActive         *bool             `json:"isActive"`
	Order            *int              `json:"order"`
}

func (h *CareerHandler) Update(c *gin.Context) {
	var req UpdateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	input := domain.UpdateCareerInput{
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		EmploymentType:   req.EmploymentType,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		IsActive:         req.IsActive,
		Order:            req.Order,
	}
	if req.Responsibilities != nil {
		input.Responsibilities = &domain.LocalizedList{
			En: domain.SplitLines(req.Responsibilities.En),
			Ar: domain.SplitLines(req.Responsibilities.Ar),
		}
	}
	if req.Requirements != nil {
		input.Requirements = &domain.LocalizedList{
			En: domain.SplitLines(req.Requirements.En),
			Ar: domain.SplitLines(req.Requirements.Ar),
		}
	}

	career, err := h.careerUC.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Career updated", career)
}

func (h *CareerHandler) ToggleActive(c *gin.Context) {
	career, err := h.careerUC.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Career status toggled", career)
}

func (h *CareerHandler) Delete(c *gin.Context) {
	if err := h.careerUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Career deleted", nil)
}

func (h *CareerHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid IDs provided"))
		return
	}

	deleted, err := h.careerUC.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Careers deleted", gin.H{"deleted_count": deleted})
}
