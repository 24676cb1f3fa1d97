package handlers

import (
	"net/http"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contacts services.ContactService
}

func NewContactHandler(base *BaseHandler, contacts services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler: base,
		contacts:    contacts,
	}
}

// RegisterRoutes mounts the contact CRUD under /contacts; all of it is
// owner-scoped and requires authentication.
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	contacts := rg.Group("/contacts", authRequired)
	{
		contacts.GET("", h.List)
		contacts.GET("/:contactId", h.GetByID)
		contacts.POST("", h.Create)
		contacts.PUT("/:contactId", h.Update)
		contacts.PATCH("/:contactId/favorite", h.UpdateFavorite)
		contacts.DELETE("/:contactId", h.Delete)
	}
}

func (h *ContactHandler) List(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	var query dto.ContactListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.contacts.List(c.Request.Context(), ownerID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) GetByID(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.GetByID(c.Request.Context(), ownerID, c.Param("contactId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), ownerID, c.Param("contactId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) UpdateFavorite(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Favorite == nil {
		apperrors.HandleError(c, apperrors.NewValidationError("missing field favorite"))
		return
	}

	contact, err := h.contacts.UpdateFavorite(c.Request.Context(), ownerID, c.Param("contactId"), *req.Favorite)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	ownerID, ok := h.AccountID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), ownerID, c.Param("contactId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}
