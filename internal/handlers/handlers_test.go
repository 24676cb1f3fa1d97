package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contacts_backend/internal/handlers"
	"contacts_backend/internal/models"
	"contacts_backend/internal/services/dto"
	"contacts_backend/internal/validator"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwnerID = "owner-1"

// authenticatedAs simulates the auth middleware having accepted a session.
func authenticatedAs(accountID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.AccountIDKey), accountID)
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

type stubAccountService struct {
	signupResp *dto.SignupResponse
	signupErr  error
	loginResp  *dto.LoginResponse
	loginErr   error
	logoutErr  error
	verifyErr  error
}

func (s *stubAccountService) Signup(context.Context, *dto.SignupRequest) (*dto.SignupResponse, error) {
	return s.signupResp, s.signupErr
}

func (s *stubAccountService) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAccountService) Logout(context.Context, string) error { return s.logoutErr }

func (s *stubAccountService) Current(context.Context, string) (*dto.AccountView, error) {
	return nil, nil
}

func (s *stubAccountService) RequestVerification(context.Context, string) error {
	return s.verifyErr
}

func (s *stubAccountService) ConfirmVerification(context.Context, string) error {
	return s.verifyErr
}

func (s *stubAccountService) UpdateSubscription(context.Context, string, string) (*dto.AccountView, error) {
	return nil, nil
}

func (s *stubAccountService) UpdateAvatar(context.Context, string, string) (string, error) {
	return "", nil
}

type stubContactService struct {
	contact   *models.Contact
	list      *dto.ContactListResponse
	err       error
	deleteErr error

	lastOwnerID string
}

func (s *stubContactService) List(_ context.Context, ownerID string, _ *dto.ContactListQuery) (*dto.ContactListResponse, error) {
	s.lastOwnerID = ownerID
	return s.list, s.err
}

func (s *stubContactService) GetByID(_ context.Context, ownerID, _ string) (*models.Contact, error) {
	s.lastOwnerID = ownerID
	return s.contact, s.err
}

func (s *stubContactService) Create(_ context.Context, ownerID string, _ *dto.ContactRequest) (*models.Contact, error) {
	s.lastOwnerID = ownerID
	return s.contact, s.err
}

func (s *stubContactService) Update(_ context.Context, ownerID, _ string, _ *dto.ContactRequest) (*models.Contact, error) {
	s.lastOwnerID = ownerID
	return s.contact, s.err
}

func (s *stubContactService) UpdateFavorite(_ context.Context, ownerID, _ string, _ bool) (*models.Contact, error) {
	s.lastOwnerID = ownerID
	return s.contact, s.err
}

func (s *stubContactService) Delete(_ context.Context, ownerID, _ string) error {
	s.lastOwnerID = ownerID
	return s.deleteErr
}

func newAuthRouter(svc *stubAccountService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewAuthHandler(handlers.NewBaseHandler(validator.New()), svc)
	h.RegisterRoutes(router.Group("/api"), authenticatedAs(testOwnerID))
	return router
}

func newContactRouter(svc *stubContactService, authRequired gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewContactHandler(handlers.NewBaseHandler(validator.New()), svc)
	h.RegisterRoutes(router.Group("/api"), authRequired)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_Created(t *testing.T) {
	svc := &stubAccountService{
		signupResp: &dto.SignupResponse{
			User: dto.AccountView{Email: "ann@example.com", Subscription: models.SubscriptionStarter},
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/users/signup",
		`{"name": "Ann", "email": "ann@example.com", "password": "secret1"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SignupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, models.SubscriptionStarter, resp.User.Subscription)
}

func TestSignup_ValidationFailure(t *testing.T) {
	router := newAuthRouter(&stubAccountService{})

	t.Run("short password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/users/signup",
			`{"name": "Ann", "email": "ann@example.com", "password": "abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "password")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/users/signup", `{"name": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSignup_Conflict(t *testing.T) {
	svc := &stubAccountService{signupErr: apperrors.NewConflictError("Email in use")}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/users/signup",
		`{"name": "Ann", "email": "ann@example.com", "password": "secret1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email in use")
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := &stubAccountService{loginErr: apperrors.NewUnauthorizedError("Email or password is wrong")}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/users/login",
		`{"email": "ann@example.com", "password": "wrong-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email or password is wrong")
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := &stubAccountService{
		loginResp: &dto.LoginResponse{
			Token: "jwt-token",
			User:  dto.AccountView{Email: "ann@example.com", Subscription: models.SubscriptionStarter},
		},
	}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/users/login",
		`{"email": "ann@example.com", "password": "secret1"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.Token)
}

func TestLogout_NoContent(t *testing.T) {
	router := newAuthRouter(&stubAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestConfirmVerification_Messages(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newAuthRouter(&stubAccountService{})
		req := httptest.NewRequest(http.MethodGet, "/api/users/verify/token-123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Verification successful")
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := &stubAccountService{verifyErr: apperrors.NewNotFoundError("User not found")}
		router := newAuthRouter(svc)
		req := httptest.NewRequest(http.MethodGet, "/api/users/verify/bogus", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})
}

func TestRequestVerification_AlreadyVerified(t *testing.T) {
	svc := &stubAccountService{verifyErr: apperrors.NewValidationError("Verification has already been passed")}
	router := newAuthRouter(svc)

	w := doJSON(router, http.MethodPost, "/api/users/verify", `{"email": "ann@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Verification has already been passed")
}

func TestContacts_RequireAuthenticatedContext(t *testing.T) {
	// The auth middleware never set an account id; every contact route
	// must refuse to proceed.
	router := newContactRouter(&stubContactService{}, passThrough)

	w := doJSON(router, http.MethodGet, "/api/contacts", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized")
}

func TestContacts_ListScopedToCaller(t *testing.T) {
	svc := &stubContactService{
		list: &dto.ContactListResponse{Contacts: []models.Contact{}, Page: 1, Limit: 20},
	}
	router := newContactRouter(svc, authenticatedAs(testOwnerID))

	w := doJSON(router, http.MethodGet, "/api/contacts?favorite=true&page=1&limit=20", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testOwnerID, svc.lastOwnerID)
}

func TestContacts_Create(t *testing.T) {
	contact := &models.Contact{Name: "Bob", Email: "bob@example.com", Phone: "123-45-67", OwnerID: testOwnerID}
	contact.ID = "contact-1"
	svc := &stubContactService{contact: contact}
	router := newContactRouter(svc, authenticatedAs(testOwnerID))

	w := doJSON(router, http.MethodPost, "/api/contacts",
		`{"name": "Bob", "email": "bob@example.com", "phone": "123-45-67"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")
}

func TestContacts_CreateRequiresName(t *testing.T) {
	router := newContactRouter(&stubContactService{}, authenticatedAs(testOwnerID))

	w := doJSON(router, http.MethodPost, "/api/contacts", `{"email": "bob@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name")
}

func TestContacts_GetByIDNotFound(t *testing.T) {
	svc := &stubContactService{err: apperrors.NewNotFoundError("Not found")}
	router := newContactRouter(svc, authenticatedAs(testOwnerID))

	w := doJSON(router, http.MethodGet, "/api/contacts/missing-id", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestContacts_UpdateFavorite(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		router := newContactRouter(&stubContactService{}, authenticatedAs(testOwnerID))

		w := doJSON(router, http.MethodPatch, "/api/contacts/contact-1/favorite", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing field favorite")
	})

	t.Run("explicit false is a valid value", func(t *testing.T) {
		contact := &models.Contact{Name: "Bob", OwnerID: testOwnerID}
		contact.ID = "contact-1"
		router := newContactRouter(&stubContactService{contact: contact}, authenticatedAs(testOwnerID))

		w := doJSON(router, http.MethodPatch, "/api/contacts/contact-1/favorite", `{"favorite": false}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestContacts_Delete(t *testing.T) {
	router := newContactRouter(&stubContactService{}, authenticatedAs(testOwnerID))

	w := doJSON(router, http.MethodDelete, "/api/contacts/contact-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "contact deleted")
}
