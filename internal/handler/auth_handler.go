package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

type authService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
}

// AuthHandler serves login, signup and logout.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginView godoc
// @Summary Login view
// @Description Returns pending flash messages. Clients with a session are sent to the dashboard.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 302 {string} string "redirect to /dashboard"
// @Router / [get]
func (h *AuthHandler) LoginView(c *gin.Context) {
	if _, ok := middleware.SessionIdentity(c); ok {
		c.Redirect(http.StatusFound, middleware.DashboardPath)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"view": "login"}, viewMeta(c))
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 {string} string "redirect to /dashboard"
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router / [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.SessionIdentity(c); ok {
		c.Redirect(http.StatusFound, middleware.DashboardPath)
		return
	}
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, "email and password are required")
		return
	}
	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := middleware.StartSession(c, *user); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal, "failed to start session"))
		return
	}
	redirectWithFlash(c, middleware.DashboardPath, middleware.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Name))
}

// SignupView godoc
// @Summary Signup view
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /signup [get]
func (h *AuthHandler) SignupView(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"view": "signup", "roles": []models.UserRole{models.RoleAdmin, models.RoleStudent}}, viewMeta(c))
}

// Signup godoc
// @Summary Create an account
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param role formData string true "Admin or Student"
// @Success 303 {string} string "redirect to /"
// @Failure 400 {object} response.Envelope
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, "name, email, password and a role of Admin or Student are required")
		return
	}
	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		reject(c, err, "/signup", middleware.FlashDanger)
		return
	}
	redirectWithFlash(c, middleware.LoginPath, middleware.FlashSuccess, "Account created successfully! Please log in.")
}

// Logout godoc
// @Summary Log out
// @Tags Auth
// @Success 303 {string} string "redirect to /"
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.EndSession(c); err != nil {
		_ = c.Error(err)
	}
	redirectWithFlash(c, middleware.LoginPath, middleware.FlashInfo, "You have been logged out.")
}
