package services

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"strings"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/imageprocessor"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/internal/storage"
	"contacts_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// AccountService is the account lifecycle manager: signup, login, logout,
// email verification and profile updates, one state machine per account.
type AccountService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accountID string) error
	Current(ctx context.Context, accountID string) (*dto.AccountView, error)
	RequestVerification(ctx context.Context, email string) error
	ConfirmVerification(ctx context.Context, token string) error
	UpdateSubscription(ctx context.Context, accountID, tier string) (*dto.AccountView, error)
	UpdateAvatar(ctx context.Context, accountID, tempPath string) (string, error)
}

type accountService struct {
	accounts repositories.AccountRepository
	mail     *EmailService
	tokens   *auth.TokenIssuer
	images   *imageprocessor.Processor
	files    storage.Storage
}

func NewAccountService(
	accounts repositories.AccountRepository,
	mail *EmailService,
	tokens *auth.TokenIssuer,
	images *imageprocessor.Processor,
	files storage.Storage,
) AccountService {
	return &accountService{
		accounts: accounts,
		mail:     mail,
		tokens:   tokens,
		images:   images,
		files:    files,
	}
}

func (s *accountService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Subscription:      models.SubscriptionStarter,
		AvatarURL:         defaultAvatarURL(req.Email),
		Verified:          false,
		VerificationToken: uuid.New().String(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.NewConflictError("Email in use")
		}
		return nil, apperrors.InternalError(err)
	}

	// The account is already persisted at this point. On delivery failure it
	// stays unverified and the resend endpoint reuses the stored token.
	if err := s.mail.SendVerificationEmail(account.Email, account.Name, account.VerificationToken); err != nil {
		logger.WithError(err).Error("verification email delivery failed", "email", account.Email)
		return nil, apperrors.ExternalServiceError(err, "Failed to send verification email")
	}

	return &dto.SignupResponse{
		User: dto.AccountView{
			Name:         account.Name,
			Email:        account.Email,
			Subscription: account.Subscription,
		},
	}, nil
}

func (s *accountService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			// Same message as a bad password so the reply never reveals
			// which part was wrong.
			return nil, apperrors.NewUnauthorizedError("Email or password is wrong")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Email or password is wrong")
	}

	if !account.Verified {
		return nil, apperrors.NewUnauthorizedError("Email not verify")
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Single active session: a new login overwrites any previous token.
	if err := s.accounts.SetSessionToken(ctx, account.ID, token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.AccountView{
			Email:        account.Email,
			Subscription: account.Subscription,
		},
	}, nil
}

// Logout clears the session token unconditionally; a second call when the
// token is already empty succeeds the same way.
func (s *accountService) Logout(ctx context.Context, accountID string) error {
	if err := s.accounts.SetSessionToken(ctx, accountID, ""); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.NewUnauthorizedError("Not authorized")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *accountService) Current(ctx context.Context, accountID string) (*dto.AccountView, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NewUnauthorizedError("Not authorized")
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.AccountView{
		Name:         account.Name,
		Email:        account.Email,
		Subscription: account.Subscription,
		AvatarURL:    account.AvatarURL,
	}, nil
}

func (s *accountService) RequestVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.InternalError(err)
	}

	if account.Verified {
		return apperrors.NewValidationError("Verification has already been passed")
	}

	if err := s.mail.SendVerificationEmail(account.Email, account.Name, account.VerificationToken); err != nil {
		logger.WithError(err).Error("verification email delivery failed", "email", account.Email)
		return apperrors.ExternalServiceError(err, "Failed to send verification email")
	}
	return nil
}

// ConfirmVerification consumes the token: the flag flip and the token clear
// happen in one update keyed by the token, so it succeeds exactly once.
func (s *accountService) ConfirmVerification(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.NewNotFoundError("User not found")
	}

	if err := s.accounts.MarkVerified(ctx, token); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *accountService) UpdateSubscription(ctx context.Context, accountID, tier string) (*dto.AccountView, error) {
	subscription := models.Subscription(tier)
	if !subscription.Valid() {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("'%s' is not a valid subscription value", tier))
	}

	if err := s.accounts.SetSubscription(ctx, accountID, subscription); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NewUnauthorizedError("Not authorized")
		}
		return nil, apperrors.InternalError(err)
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AccountView{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		Subscription: account.Subscription,
	}, nil
}

// UpdateAvatar resizes the temporary upload to the fixed square size, moves
// it to permanent storage keyed by account id, then records the new URL. The
// account row is only touched after the file write succeeds, and the temp
// file is left in place when anything fails.
func (s *accountService) UpdateAvatar(ctx context.Context, accountID, tempPath string) (string, error) {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return "", apperrors.NewUnauthorizedError("Not authorized")
		}
		return "", apperrors.InternalError(err)
	}

	f, err := os.Open(tempPath)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	processed, contentType, err := s.images.ProcessAvatar(f)
	f.Close()
	if err != nil {
		return "", apperrors.NewBadRequestError("Unsupported image file")
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	key := fmt.Sprintf("avatars/%s%s", accountID, ext)

	if err := s.files.Save(ctx, key, processed, contentType); err != nil {
		return "", apperrors.ExternalServiceError(err, "Failed to store avatar")
	}

	// Drop the stale variant when the format changed, so only one file per
	// account remains.
	for _, staleExt := range []string{".jpg", ".png"} {
		if staleExt == ext {
			continue
		}
		staleKey := fmt.Sprintf("avatars/%s%s", accountID, staleExt)
		if err := s.files.Delete(ctx, staleKey); err != nil {
			logger.WithError(err).Warn("failed to delete stale avatar", "key", staleKey)
		}
	}

	avatarURL := s.files.URL(key)
	if err := s.accounts.SetAvatarURL(ctx, accountID, avatarURL); err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := os.Remove(tempPath); err != nil {
		logger.WithError(err).Warn("failed to remove temp upload", "path", tempPath)
	}

	return avatarURL, nil
}

// defaultAvatarURL derives a gravatar address from the email, matching the
// avatar every account starts with before uploading one.
func defaultAvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", hash)
}
