package store

import (
	"context"
	"database/sql"
	"encoding/json"
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

const selectProjectColumns = `
	id, name, description, client_id, status, start_date, end_date, budget, attachments
`

func scanProject(s scanner) (model.Project, error) {
	var (
		p           model.Project
		statusStr   string
		attachments []byte
	)

	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.ClientID, &statusStr,
		&p.StartDate, &p.EndDate, &p.Budget, &attachments,
	); err != nil {
		return model.Project{}, err
	}

	p.Status = model.ProjectStatus(statusStr)

	if err := json.Unmarshal(attachments, &p.Attachments); err != nil {
		return model.Project{}, fmt.Errorf("decoding attachments: %w", err)
	}

	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project rows: %w", err)
	}

	return projects, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT id, title, description, project_id, status, due_date, assigned_to
		FROM tasks
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task

	for rows.Next() {
		var (
			t         model.Task
			statusStr string
		)

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ProjectID, &statusStr, &t.DueDate, &t.AssignedTo); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		t.Status = model.TaskStatus(statusStr)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	attachments, err := json.Marshal(emptyIfNil(p.Attachments))
	if err != nil {
		return fmt.Errorf("encoding attachments: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, description, client_id, status, start_date, end_date, budget, attachments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`

	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.ClientID, p.Status,
		p.StartDate, p.EndDate, p.Budget, attachments,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	attachments, err := json.Marshal(emptyIfNil(p.Attachments))
	if err != nil {
		return fmt.Errorf("encoding attachments: %w", err)
	}

	query := `
		UPDATE projects
		SET name = $1, description = $2, client_id = $3, status = $4,
			start_date = $5, end_date = $6, budget = $7, attachments = $8, updated_at = NOW()
		WHERE id = $9
	`

	_, err = s.db.ExecContext(ctx, query,
		p.Name, p.Description, p.ClientID, p.Status,
		p.StartDate, p.EndDate, p.Budget, attachments, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	return nil
}

// DeleteProject removes the project and every task that points at it in one
// database transaction, mirroring the store's cascade rule.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

func (s *Store) CreateTask(ctx context.Context, t *model.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, project_id, status, due_date, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.ProjectID, t.Status, t.DueDate, t.AssignedTo,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

func (s *Store) UpdateTask(ctx context.Context, t *model.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, project_id = $3, status = $4, due_date = $5, assigned_to = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Title, t.Description, t.ProjectID, t.Status, t.DueDate, t.AssignedTo, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) error {
	query := `UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
