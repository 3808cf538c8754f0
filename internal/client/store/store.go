package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mfcruz/gestor/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// paymentRecord is the jsonb shape of one payment history entry.
type paymentRecord struct {
	Date   time.Time           `json:"date"`
	Amount int64               `json:"amount"`
	Status model.PaymentStatus `json:"status"`
}

const selectClientColumns = `
	id, name, tax_id, email, phone, address, tags, project_history, payment_history, next_follow_up
`

func scanClient(s scanner) (model.Client, error) {
	var (
		c            model.Client
		tags         []byte
		projects     []byte
		payments     []byte
		nextFollowUp sql.NullTime
	)

	if err := s.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address,
		&tags, &projects, &payments, &nextFollowUp,
	); err != nil {
		return model.Client{}, err
	}

	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return model.Client{}, fmt.Errorf("decoding tags: %w", err)
	}

	if err := json.Unmarshal(projects, &c.ProjectHistory); err != nil {
		return model.Client{}, fmt.Errorf("decoding project history: %w", err)
	}

	var records []paymentRecord
	if err := json.Unmarshal(payments, &records); err != nil {
		return model.Client{}, fmt.Errorf("decoding payment history: %w", err)
	}

	for _, r := range records {
		c.PaymentHistory = append(c.PaymentHistory, model.PaymentRecord(r))
	}

	if nextFollowUp.Valid {
		t := nextFollowUp.Time
		c.NextFollowUp = &t
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]model.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	tags, projects, payments, err := encodeHistories(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO clients (id, name, tax_id, email, phone, address, tags, project_history, payment_history, next_follow_up, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err = s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address,
		tags, projects, payments, nullableTime(c.NextFollowUp),
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) UpdateClient(ctx context.Context, c *model.Client) error {
	tags, projects, payments, err := encodeHistories(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET name = $1, tax_id = $2, email = $3, phone = $4, address = $5,
			tags = $6, project_history = $7, payment_history = $8, next_follow_up = $9, updated_at = NOW()
		WHERE id = $10
	`

	_, err = s.db.ExecContext(ctx, query,
		c.Name, c.TaxID, c.Email, c.Phone, c.Address,
		tags, projects, payments, nullableTime(c.NextFollowUp), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

func (s *Store) UpdateTags(ctx context.Context, id string, tags []string) error {
	encoded, err := json.Marshal(emptyIfNil(tags))
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `UPDATE clients SET tags = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, encoded, id); err != nil {
		return fmt.Errorf("updating tags: %w", err)
	}

	return nil
}

func encodeHistories(c *model.Client) (tags, projects, payments []byte, err error) {
	tags, err = json.Marshal(emptyIfNil(c.Tags))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding tags: %w", err)
	}

	projects, err = json.Marshal(emptyIfNil(c.ProjectHistory))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding project history: %w", err)
	}

	records := make([]paymentRecord, len(c.PaymentHistory))
	for i, r := range c.PaymentHistory {
		records[i] = paymentRecord(r)
	}

	payments, err = json.Marshal(records)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding payment history: %w", err)
	}

	return tags, projects, payments, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}
