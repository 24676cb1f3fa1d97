package repositories

import (
	"context"
	"errors"

	"contacts_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactFilter narrows List results. Favorite is a tri-state: nil means
// no filtering.
type ContactFilter struct {
	Favorite *bool
	Page     int
	PageSize int
}

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, ownerID, id string) (*models.Contact, error)
	List(ctx context.Context, ownerID string, filter ContactFilter) ([]models.Contact, int64, error)
	Update(ctx context.Context, contact *models.Contact) error
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ContactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepositoryImpl) FindByID(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).First(&contact, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context, ownerID string, filter ContactFilter) ([]models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{}).Where("owner_id = ?", ownerID)

	if filter.Favorite != nil {
		query = query.Where("favorite = ?", *filter.Favorite)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}

	var contacts []models.Contact
	if err := query.Order("created_at").Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *models.Contact) error {
	result := r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("id = ? AND owner_id = ?", contact.ID, contact.OwnerID).
		Updates(map[string]interface{}{
			"name":     contact.Name,
			"email":    contact.Email,
			"phone":    contact.Phone,
			"favorite": contact.Favorite,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) error {
	result := r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("favorite", favorite)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Contact{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
