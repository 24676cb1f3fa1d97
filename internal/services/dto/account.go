package dto

import "contacts_backend/internal/models"

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required,subscription"`
}

// AccountView is the public profile shape. It never carries the password
// hash or any token.
type AccountView struct {
	ID           string              `json:"id,omitempty"`
	Name         string              `json:"name,omitempty"`
	Email        string              `json:"email"`
	Subscription models.Subscription `json:"subscription"`
	AvatarURL    string              `json:"avatarURL,omitempty"`
}

type SignupResponse struct {
	User AccountView `json:"user"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  AccountView `json:"user"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}
