package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/dto"
	apierrors "github.com/yukikurage/lift-project-api/internal/errors"
	"github.com/yukikurage/lift-project-api/internal/middleware"
	"github.com/yukikurage/lift-project-api/internal/services"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !startSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !startSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		middleware.Logger(c).Error("failed to clear session", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ValidateField checks one registration or login field. The registration
// password answers with the list of unmet rules.
func (h *AuthHandler) ValidateField(c *gin.Context) {
	var req dto.ValidateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	result, err := h.authService.ValidateField(c.Request.Context(), req.Field, req.TextValue())
	if err != nil {
		middleware.Logger(c).Error("failed to validate account field", zap.String("field", req.Field), zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	resp := dto.ValidateFieldResponse{Success: result.OK(), Message: result.Message}
	if req.Field == validation.AccountPassword.Key() {
		flags := make([]validation.PasswordFlag, 0, len(result.Flags))
		resp.Message = append(flags, result.Flags...)
		if result.Message != "" {
			resp.Message = result.Message
		}
	}
	c.JSON(http.StatusOK, resp)
}

// startSession replaces any previous session with one for userID.
func startSession(c *gin.Context, userID uint64) bool {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, userID)
	if err := session.Save(); err != nil {
		middleware.Logger(c).Error("failed to save session", zap.Error(err))
		apierrors.InternalError(c, "")
		return false
	}
	return true
}

func respondAuthError(c *gin.Context, err error) {
	var fieldErr *validation.ValidationError
	switch {
	case errors.As(err, &fieldErr):
		apierrors.ValidationFailed(c, fieldErr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "")
	default:
		middleware.Logger(c).Error("auth request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
