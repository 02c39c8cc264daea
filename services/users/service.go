package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"streamhaven/internal/storage"
	"streamhaven/models"
)

var (
	ErrStoreRequired = errors.New("users: storage is required")
	ErrValidation    = errors.New("users: invalid credentials input")
	ErrEmailTaken    = errors.New("users: an account with this email already exists")
	ErrNotFound      = errors.New("users: no account found with this email")
	ErrWrongPassword = errors.New("users: incorrect password")
)

type credentials struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// Service is the credential-record store plus the current-session projection.
// Passwords are stored as the opaque string supplied at signup and compared
// by plain equality; there is no hashing in this system.
type Service struct {
	mu       sync.Mutex
	store    storage.Store
	validate *validator.Validate
}

// NewService builds the user service over the given store.
func NewService(store storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store, validate: validator.New()}, nil
}

// Signup creates a new account. Email uniqueness is enforced across all
// stored accounts; validation failures leave stored state untouched.
func (s *Service) Signup(ctx context.Context, email, username, password string) (models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	input := credentials{Email: email, Username: username, Password: password}
	if err := s.validate.Struct(input); err != nil {
		return models.Account{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.AccountRecord
	storage.ReadJSON(ctx, s.store, storage.KeyUsers, &records)

	for _, r := range records {
		if r.Email == email {
			return models.Account{}, ErrEmailTaken
		}
	}

	account := models.Account{
		ID:        uuid.NewString(),
		Email:     email,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	records = append(records, account.ToRecord())
	storage.WriteJSON(ctx, s.store, storage.KeyUsers, records)

	return account, nil
}

// Login checks the credentials against the stored records and, on success,
// persists the session projection as the current user.
func (s *Service) Login(ctx context.Context, email, password string) (models.Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.AccountRecord
	storage.ReadJSON(ctx, s.store, storage.KeyUsers, &records)

	for _, r := range records {
		if r.Email != email {
			continue
		}
		if r.Password != password {
			return models.Account{}, ErrWrongPassword
		}
		account := r.ToAccount()
		storage.WriteJSON(ctx, s.store, storage.KeyCurrentUser, models.SessionFromAccount(account))
		return account, nil
	}
	return models.Account{}, ErrNotFound
}

// Current returns the persisted session projection, if any.
func (s *Service) Current(ctx context.Context) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session models.Session
	found := storage.ReadJSON(ctx, s.store, storage.KeyCurrentUser, &session)
	if !found || session.ID == "" {
		return models.Session{}, false
	}
	return session, true
}

// Logout clears the persisted session projection.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	storage.WriteJSON(ctx, s.store, storage.KeyCurrentUser, models.Session{})
}
