package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mfcruz/gestor/internal/model"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, type, amount, description, category, project_id, client_id, date, status, payment_method, remote_payment_id, remote_status
`

func scanTransaction(s scanner) (model.Transaction, error) {
	var (
		tx        model.Transaction
		typeStr   string
		statusStr string
	)

	if err := s.Scan(
		&tx.ID, &typeStr, &tx.Amount, &tx.Description, &tx.Category,
		&tx.ProjectID, &tx.ClientID, &tx.Date, &statusStr,
		&tx.PaymentMethod, &tx.RemotePaymentID, &tx.RemoteStatus,
	); err != nil {
		return model.Transaction{}, err
	}

	tx.Type = model.TransactionType(typeStr)
	tx.Status = model.TransactionStatus(statusStr)

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (id, type, amount, description, category, project_id, client_id, date, status, payment_method, remote_payment_id, remote_status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
`

func (s *Store) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.db.ExecContext(ctx, insertTransactionQuery,
		tx.ID, tx.Type, tx.Amount, tx.Description, tx.Category,
		tx.ProjectID, tx.ClientID, tx.Date, tx.Status,
		tx.PaymentMethod, tx.RemotePaymentID, tx.RemoteStatus,
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts a batch inside one database transaction, so a
// partially imported statement never lands.
func (s *Store) CreateTransactions(ctx context.Context, txs []model.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, tx := range txs {
		_, err := dbTx.ExecContext(ctx, insertTransactionQuery,
			tx.ID, tx.Type, tx.Amount, tx.Description, tx.Category,
			tx.ProjectID, tx.ClientID, tx.Date, tx.Status,
			tx.PaymentMethod, tx.RemotePaymentID, tx.RemoteStatus,
		)
		if err != nil {
			return fmt.Errorf("creating transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, amount = $2, description = $3, category = $4, project_id = $5,
			client_id = $6, date = $7, status = $8, payment_method = $9,
			remote_payment_id = $10, remote_status = $11, updated_at = NOW()
		WHERE id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Type, tx.Amount, tx.Description, tx.Category, tx.ProjectID,
		tx.ClientID, tx.Date, tx.Status, tx.PaymentMethod,
		tx.RemotePaymentID, tx.RemoteStatus, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, name string) error {
	query := `
		INSERT INTO categories (name, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (name) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}
