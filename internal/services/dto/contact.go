package dto

import "contacts_backend/internal/models"

type ContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

// FavoriteRequest uses a pointer so a missing field is distinguishable from
// an explicit false.
type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type ContactListQuery struct {
	Favorite *bool `form:"favorite"`
	Page     int   `form:"page" validate:"omitempty,min=1"`
	Limit    int   `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ContactListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
