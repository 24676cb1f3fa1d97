package handlers

import (
	"net/http"
	"path/filepath"

	"contacts_backend/internal/config"
	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler owns the authenticated profile routes.
type UserHandler struct {
	*BaseHandler
	accounts services.AccountService
	cfg      *config.Config
}

func NewUserHandler(base *BaseHandler, accounts services.AccountService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		accounts:    accounts,
		cfg:         cfg,
	}
}

// RegisterRoutes mounts the profile routes under /users; every route here
// requires authentication.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	users := rg.Group("/users", authRequired)
	{
		users.GET("/current", h.Current)
		users.PATCH("", h.UpdateSubscription)
		users.PATCH("/avatars", h.UpdateAvatar)
	}
}

func (h *UserHandler) Current(c *gin.Context) {
	accountID, ok := h.AccountID(c)
	if !ok {
		return
	}

	view, err := h.accounts.Current(c.Request.Context(), accountID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

func (h *UserHandler) UpdateSubscription(c *gin.Context) {
	accountID, ok := h.AccountID(c)
	if !ok {
		return
	}

	var req dto.SubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	view, err := h.accounts.UpdateSubscription(c.Request.Context(), accountID, req.Subscription)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

// UpdateAvatar receives a multipart "avatar" file, parks it in the temp dir
// and hands the path to the service, which resizes and relocates it.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	accountID, ok := h.AccountID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("missing avatar file"))
		return
	}
	if file.Size > h.cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError("avatar file is too large"))
		return
	}

	tempPath := filepath.Join(h.cfg.Upload.TempDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	avatarURL, err := h.accounts.UpdateAvatar(c.Request.Context(), accountID, tempPath)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvatarResponse{AvatarURL: avatarURL})
}
