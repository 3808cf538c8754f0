package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

var (
	// ErrNotAuthenticated is returned when an operation requires a logged-in
	// user and none exists.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned on login with an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned by repositories when a user lookup misses.
	ErrNotFound = errors.New("user not found")
)

// Repository persists users and the single serialized session blob. A
// missing session is reported as (nil, nil), not an error.
type Repository interface {
	CreateUser(ctx context.Context, u *model.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, string, error)
	UpdateUser(ctx context.Context, u *model.User) error
	SaveSession(ctx context.Context, u *model.User) error
	LoadSession(ctx context.Context) (*model.User, error)
	ClearSession(ctx context.Context) error
}

type Service struct {
	store    *store.Store
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(st *store.Store, repo Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{store: st, repo: repo, secret: []byte(secret), tokenTTL: tokenTTL}
}

type RegisterParams struct {
	Name         string
	Email        string
	TaxID        string
	BusinessType model.BusinessType
	FiscalRegime model.FiscalRegime
	Password     string
}

// Register creates the user, opens a session and returns a bearer token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := model.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		TaxID:        params.TaxID,
		BusinessType: params.BusinessType,
		FiscalRegime: params.FiscalRegime,
	}

	if err := s.repo.CreateUser(ctx, &u, string(hash)); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	if err := s.openSession(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return nil, "", err
	}

	return &u, token, nil
}

// Login verifies the credentials, opens a session and returns a bearer
// token.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, hash, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.openSession(ctx, *u); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(*u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) openSession(ctx context.Context, u model.User) error {
	if err := s.repo.SaveSession(ctx, &u); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.SetUser(u)
	})

	return nil
}

// RestoreSession reloads a previously persisted session, if any. Called once
// at startup.
func (s *Service) RestoreSession(ctx context.Context) error {
	u, err := s.repo.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	if u == nil {
		return nil
	}

	s.store.Apply(func(st state.State) state.State {
		return st.SetUser(*u)
	})

	return nil
}

// Logout clears both the persisted session and the in-memory user.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.ClearUser()
	})

	return nil
}

// Current returns the logged-in user.
func (s *Service) Current() (model.User, error) {
	u := s.store.Snapshot().Auth.User
	if u == nil {
		return model.User{}, ErrNotAuthenticated
	}

	return *u, nil
}

type ProfileUpdate struct {
	Name  *string
	Email *string
	TaxID *string
}

// UpdateProfile patches the logged-in user's profile fields.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	u, err := s.Current()
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		u.Name = *update.Name
	}

	if update.Email != nil {
		u.Email = *update.Email
	}

	if update.TaxID != nil {
		u.TaxID = *update.TaxID
	}

	if err := s.persistUser(ctx, u); err != nil {
		return nil, err
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateProfile(u)
	})

	return &u, nil
}

// UpdateFiscalInfo changes the logged-in user's fiscal classification.
func (s *Service) UpdateFiscalInfo(ctx context.Context, businessType model.BusinessType, regime model.FiscalRegime) (*model.User, error) {
	u, err := s.Current()
	if err != nil {
		return nil, err
	}

	u.BusinessType = businessType
	u.FiscalRegime = regime

	if err := s.persistUser(ctx, u); err != nil {
		return nil, err
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateFiscalInfo(businessType, regime)
	})

	return &u, nil
}

func (s *Service) persistUser(ctx context.Context, u model.User) error {
	if err := s.repo.UpdateUser(ctx, &u); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	if err := s.repo.SaveSession(ctx, &u); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

// IssueToken signs a bearer token for the user.
func (s *Service) IssueToken(u model.User) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// VerifyToken validates a bearer token and returns the user id it carries.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNotAuthenticated
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrNotAuthenticated
	}

	return claims.Subject, nil
}
