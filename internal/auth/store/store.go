package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mfcruz/gestor/internal/auth"
	"github.com/mfcruz/gestor/internal/model"
)

// sessionKey is the fixed key of the single persisted session blob.
const sessionKey = "session:user"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *model.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, name, email, tax_id, business_type, fiscal_regime, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.TaxID, u.BusinessType, u.FiscalRegime, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, string, error) {
	query := `
		SELECT id, name, email, tax_id, business_type, fiscal_regime, password_hash
		FROM users
		WHERE email = $1
	`

	var (
		u            model.User
		businessType string
		regime       string
		hash         string
	)

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.TaxID, &businessType, &regime, &hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", auth.ErrNotFound
	}

	if err != nil {
		return nil, "", fmt.Errorf("getting user by email: %w", err)
	}

	u.BusinessType = model.BusinessType(businessType)
	u.FiscalRegime = model.FiscalRegime(regime)

	return &u, hash, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, tax_id = $3, business_type = $4, fiscal_regime = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		u.Name, u.Email, u.TaxID, u.BusinessType, u.FiscalRegime, u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}

// SaveSession upserts the serialized user under the fixed session key.
func (s *Store) SaveSession(ctx context.Context, u *model.User) error {
	blob, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	query := `
		INSERT INTO sessions (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, sessionKey, blob); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

// LoadSession returns the persisted session user, or (nil, nil) when no
// session exists.
func (s *Store) LoadSession(ctx context.Context) (*model.User, error) {
	var blob []byte

	err := s.db.QueryRowContext(ctx, `SELECT value FROM sessions WHERE key = $1`, sessionKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(blob, &u); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	return &u, nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = $1`, sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}
