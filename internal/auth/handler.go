// File: internal/auth/handler.go
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"homequest_backend/internal/common"
	"homequest_backend/internal/identity"
	"homequest_backend/internal/profile"
)

// SignupRequest is the signup payload. Password policy and the user type
// enum are enforced here, before anything is delegated to the identity
// provider.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=150"`
	UserType string `json:"userType" binding:"required,oneof=tenant landlord buyer"`
}

// SignupResponse acknowledges a successful signup.
type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handler exposes signup over HTTP.
type Handler struct {
	provider identity.Provider
	profiles *profile.Service
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(provider identity.Provider, profiles *profile.Service, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, profiles: profiles, logger: logger}
}

// RegisterRoutes sets up the auth routes. Signup is unauthenticated.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	uid, err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password, req.Name, req.UserType)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	// The provider owns id and email; seed the profile from its record so a
	// later GET does not need to lazily materialize it.
	ident := &identity.Identity{ID: uid, Email: req.Email, Name: req.Name, UserType: req.UserType}
	if _, err := h.profiles.Create(c.Request.Context(), ident, req.Name, req.UserType); err != nil {
		h.logger.Error("Profile seed after signup failed", zap.Error(err), zap.String("userID", uid))
		common.RespondWithError(c, err)
		return
	}

	h.logger.Info("Signup completed", zap.String("userID", uid))
	common.RespondCreated(c, SignupResponse{Success: true, Message: "Account created successfully."})
}
