package handlers

import (
	"net/http"

	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the unauthenticated account routes plus logout.
type AuthHandler struct {
	*BaseHandler
	accounts services.AccountService
}

func NewAuthHandler(base *BaseHandler, accounts services.AccountService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		accounts:    accounts,
	}
}

// RegisterRoutes mounts the auth routes under /users. authRequired guards
// logout only; the rest is public.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)
		users.POST("/verify", h.RequestVerification)
		users.GET("/verify/:verificationToken", h.ConfirmVerification)
		users.GET("/logout", authRequired, h.Logout)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.accounts.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	accountID, ok := h.AccountID(c)
	if !ok {
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), accountID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) RequestVerification(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.accounts.RequestVerification(c.Request.Context(), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (h *AuthHandler) ConfirmVerification(c *gin.Context) {
	token := c.Param("verificationToken")

	if err := h.accounts.ConfirmVerification(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification successful"})
}
