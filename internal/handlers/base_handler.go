package handlers

import (
	"contacts_backend/internal/logger"
	"contacts_backend/internal/validator"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into obj and runs the validator.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.WithError(err).Warn("failed to bind JSON body", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery binds query parameters into obj and runs the
// validator.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.WithError(err).Warn("failed to bind query params", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.Warn("validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.WithError(err).Error("internal validator error", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

// HandleServiceError translates a service error into an HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.Warn("service error",
			"error", appErr.Message,
			"code", appErr.Code,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.WithError(err).Error("internal server error", "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// AccountID returns the authenticated account id set by the auth
// middleware; it writes a 401 and returns false when absent.
func (h *BaseHandler) AccountID(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(contextkeys.AccountIDKey))
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authorized"))
		return "", false
	}

	id, ok := val.(string)
	if !ok || id == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authorized"))
		return "", false
	}
	return id, true
}
