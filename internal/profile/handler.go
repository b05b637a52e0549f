// File: internal/profile/handler.go
package profile

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"homequest_backend/internal/common"
	"homequest_backend/internal/middleware"
)

// Handler exposes profile operations over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the profile routes. All of them require auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := router.Group("/user", authMW)
	{
		userGroup.GET("/profile", h.getProfile)
		userGroup.PUT("/profile", h.updateProfile)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	ident := middleware.GetIdentityFromContext(c)
	if ident == nil {
		h.logger.Error("Identity missing from context on authenticated route", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Caller identity missing."))
		return
	}

	p, err := h.service.Get(c.Request.Context(), ident)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, p)
}

func (h *Handler) updateProfile(c *gin.Context) {
	ident := middleware.GetIdentityFromContext(c)
	if ident == nil {
		h.logger.Error("Identity missing from context on authenticated route", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Caller identity missing."))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.service.Update(c.Request.Context(), ident, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, p)
}
