package validator

import (
	"contacts_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds the domain rules used in DTO tags.
func registerCustomRules(v *validator.Validate) error {
	// subscription: value must be one of the known account tiers.
	return v.RegisterValidation("subscription", func(fl validator.FieldLevel) bool {
		return models.Subscription(fl.Field().String()).Valid()
	})
}
