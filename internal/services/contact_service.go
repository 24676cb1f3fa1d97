package services

import (
	"context"

	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
)

type ContactService interface {
	List(ctx context.Context, ownerID string, query *dto.ContactListQuery) (*dto.ContactListResponse, error)
	GetByID(ctx context.Context, ownerID, contactID string) (*models.Contact, error)
	Create(ctx context.Context, ownerID string, req *dto.ContactRequest) (*models.Contact, error)
	Update(ctx context.Context, ownerID, contactID string, req *dto.ContactRequest) (*models.Contact, error)
	UpdateFavorite(ctx context.Context, ownerID, contactID string, favorite bool) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, contactID string) error
}

type contactService struct {
	contacts repositories.ContactRepository
}

func NewContactService(contacts repositories.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) List(ctx context.Context, ownerID string, query *dto.ContactListQuery) (*dto.ContactListResponse, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	contacts, total, err := s.contacts.List(ctx, ownerID, repositories.ContactFilter{
		Favorite: query.Favorite,
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ContactListResponse{
		Contacts: contacts,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *contactService) GetByID(ctx context.Context, ownerID, contactID string) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, ownerID, contactID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return contact, nil
}

func (s *contactService) Create(ctx context.Context, ownerID string, req *dto.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
		OwnerID:  ownerID,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, ownerID, contactID string, req *dto.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
		OwnerID:  ownerID,
	}
	contact.ID = contactID

	if err := s.contacts.Update(ctx, contact); err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(ctx, ownerID, contactID)
}

func (s *contactService) UpdateFavorite(ctx context.Context, ownerID, contactID string, favorite bool) (*models.Contact, error) {
	if err := s.contacts.SetFavorite(ctx, ownerID, contactID, favorite); err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.NewNotFoundError("Not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(ctx, ownerID, contactID)
}

func (s *contactService) Delete(ctx context.Context, ownerID, contactID string) error {
	if err := s.contacts.Delete(ctx, ownerID, contactID); err != nil {
		if apperrors.Is(err, repositories.ErrContactNotFound) {
			return apperrors.NewNotFoundError("Not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
