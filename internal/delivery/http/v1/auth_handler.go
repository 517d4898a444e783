package v1

import (
	"net/http"
	"strings"

	"go-careers-cms/internal/delivery/http/middleware"
	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"
	"go-careers-cms/pkg/apperror"
	"go-careers-cms/pkg/security"
	"go-careers-cms/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers auth and user-management routes
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()), handler.Login)
		// Logout stays public: the usecase verifies the token itself and
		// still accepts expired sessions so they can end cleanly.
		auth.POST("/logout", handler.Logout)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password", handler.ResetPassword)
	}

	session := protected.Group("/auth")
	{
		session.GET("/me", handler.Me)
	}

	users := protected.Group("/auth/users", middleware.RequireRoles(domain.RoleAdmin))
	{
		users.POST("", handler.CreateUser)
		users.GET("", handler.ListUsers)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
		users.POST("/bulk-delete", handler.BulkDeleteUsers)
	}
}

// RegisterRequest is the self-service signup payload
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", user)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}
	}

	if err := h.authUC.Logout(c.Request.Context(), tokenString); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// CreateUser provisions an account. Multipart form with userName, email,
// password and role fields plus an optional image file.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	image, err := formUpload(c, "image", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.CreateUser(c.Request.Context(), domain.CreateUserInput{
		UserName: c.PostForm("userName"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Role:     c.PostForm("role"),
		Image:    image,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User created", user)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// UpdateUser applies partial account changes. Multipart form; absent fields
// stay untouched.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	image, err := formUpload(c, "image", security.ImageMIMETypes)
	if err != nil {
		c.Error(err)
		return
	}

	input := domain.UpdateUserInput{Image: image}
	if v, ok := c.GetPostForm("userName"); ok {
		input.UserName = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		input.Email = &v
	}
	if v, ok := c.GetPostForm("password"); ok {
		input.Password = &v
	}
	if v, ok := c.GetPostForm("role"); ok {
		input.Role = &v
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active := v == "true" || v == "1"
		input.IsActive = &active
	}

	user, err := h.authUC.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", user)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.authUC.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted", nil)
}

func (h *AuthHandler) BulkDeleteUsers(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid IDs provided"))
		return
	}

	deleted, err := h.authUC.BulkDeleteUsers(c.Request.Context(), req.IDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users deleted", gin.H{"deleted_count": deleted})
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "If the email exists, a reset code has been sent", nil)
}

// ResetPasswordRequest completes the reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.FormatError(err)))
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset", nil)
}
