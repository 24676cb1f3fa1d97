package services_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"contacts_backend/internal/email"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"

	"github.com/google/uuid"
)

// fakeAccountRepo is an in-memory credential store honoring the repository
// contract, including the atomic token-keyed verification update.
type fakeAccountRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*models.Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.Email == account.Email {
			return repositories.ErrAccountAlreadyExists
		}
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	clone := *account
	r.byID[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.byID {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) SetSessionToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.Token = token
	return nil
}

func (r *fakeAccountRepo) MarkVerified(ctx context.Context, verificationToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.byID {
		if account.VerificationToken == verificationToken && !account.Verified {
			account.Verified = true
			account.VerificationToken = ""
			return nil
		}
	}
	return repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) SetSubscription(ctx context.Context, id string, tier models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.Subscription = tier
	return nil
}

func (r *fakeAccountRepo) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	account.AvatarURL = avatarURL
	return nil
}

// fakeContactRepo is an in-memory contact store.
type fakeContactRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: make(map[string]*models.Contact)}
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	clone := *contact
	r.byID[contact.ID] = &clone
	return nil
}

func (r *fakeContactRepo) FindByID(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.byID[id]
	if !ok || contact.OwnerID != ownerID {
		return nil, repositories.ErrContactNotFound
	}
	clone := *contact
	return &clone, nil
}

func (r *fakeContactRepo) List(ctx context.Context, ownerID string, filter repositories.ContactFilter) ([]models.Contact, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Contact
	for _, contact := range r.byID {
		if contact.OwnerID != ownerID {
			continue
		}
		if filter.Favorite != nil && contact.Favorite != *filter.Favorite {
			continue
		}
		matched = append(matched, *contact)
	}

	total := int64(len(matched))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[contact.ID]
	if !ok || existing.OwnerID != contact.OwnerID {
		return repositories.ErrContactNotFound
	}
	existing.Name = contact.Name
	existing.Email = contact.Email
	existing.Phone = contact.Phone
	existing.Favorite = contact.Favorite
	return nil
}

func (r *fakeContactRepo) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.byID[id]
	if !ok || contact.OwnerID != ownerID {
		return repositories.ErrContactNotFound
	}
	contact.Favorite = favorite
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.byID[id]
	if !ok || contact.OwnerID != ownerID {
		return repositories.ErrContactNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeStorage keeps saved files in memory.
type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.files[path] = data
	s.mu.Unlock()
	return nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()
	return nil
}

func (s *fakeStorage) URL(path string) string {
	return "/" + path
}

func (s *fakeStorage) get(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	return data, ok
}

// recordingEmailProvider keeps every message instead of delivering it.
type recordingEmailProvider struct {
	mu   sync.Mutex
	sent []email.Message
}

func (p *recordingEmailProvider) Send(msg *email.Message) error {
	p.mu.Lock()
	p.sent = append(p.sent, *msg)
	p.mu.Unlock()
	return nil
}

func (p *recordingEmailProvider) messages() []email.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]email.Message(nil), p.sent...)
}

// failingEmailProvider rejects every message.
type failingEmailProvider struct{}

func (failingEmailProvider) Send(_ *email.Message) error { return errors.New("smtp unreachable") }
