package repositories

import (
	"context"
	"errors"
	"time"

	"contacts_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository is the credential store contract. Every write is a
// single-document atomic update; nothing here does read-modify-write.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// SetSessionToken overwrites the stored session token; pass "" to clear.
	SetSessionToken(ctx context.Context, id, token string) error

	// MarkVerified flips Verified and clears the verification token in one
	// update keyed by the token itself, so a consumed token can never match
	// again. Returns ErrAccountNotFound when no unverified account holds it.
	MarkVerified(ctx context.Context, verificationToken string) error

	SetSubscription(ctx context.Context, id string, tier models.Subscription) error
	SetAvatarURL(ctx context.Context, id, avatarURL string) error
}

type AccountRepositoryImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *models.Account) error {
	var existing models.Account
	err := r.db.WithContext(ctx).Where("email = ?", account.Email).First(&existing).Error
	if err == nil {
		return ErrAccountAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) SetSessionToken(ctx context.Context, id, token string) error {
	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token":      token,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) MarkVerified(ctx context.Context, verificationToken string) error {
	result := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("verification_token = ? AND verified = ?", verificationToken, false).
		Updates(map[string]interface{}{
			"verified":           true,
			"verification_token": "",
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) SetSubscription(ctx context.Context, id string, tier models.Subscription) error {
	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subscription": tier,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"avatar_url": avatarURL,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
