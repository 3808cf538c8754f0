package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

// Repository persists projects and tasks. DeleteProject must remove the
// project and every task that points at it atomically.
type Repository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id string) error
	CreateTask(ctx context.Context, t *model.Task) error
	UpdateTask(ctx context.Context, t *model.Task) error
	UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) error
}

type Service struct {
	store *store.Store
	repo  Repository
}

func NewService(st *store.Store, repo Repository) *Service {
	return &Service{store: st, repo: repo}
}

// Load replaces the in-memory board with the persisted collections.
func (s *Service) Load(ctx context.Context) error {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}

	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	s.store.Apply(
		func(st state.State) state.State { return st.SetProjects(projects) },
		func(st state.State) state.State { return st.SetTasks(tasks) },
	)

	return nil
}

type CreateParams struct {
	Name        string
	Description string
	ClientID    string
	Status      model.ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
	Budget      int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Project, error) {
	status := params.Status
	if status == "" {
		status = model.ProjectNotStarted
	}

	p := model.Project{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		ClientID:    params.ClientID,
		Status:      status,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Budget:      params.Budget,
	}

	if err := s.repo.CreateProject(ctx, &p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddProject(p)
	})

	return &p, nil
}

// Update replaces the project with a matching id; silent no-op when absent.
func (s *Service) Update(ctx context.Context, p model.Project) error {
	if err := s.repo.UpdateProject(ctx, &p); err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateProject(p)
	})

	return nil
}

// Delete removes the project and cascades to its tasks, both durably and in
// the snapshot.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.DeleteProject(id)
	})

	return nil
}

type TaskParams struct {
	Title       string
	Description string
	Status      model.TaskStatus
	DueDate     time.Time
	AssignedTo  string
}

// CreateTask adds a task under a project. The project id is not verified;
// a task under an unknown project is an orphan the board tolerates.
func (s *Service) CreateTask(ctx context.Context, projectID string, params TaskParams) (*model.Task, error) {
	status := params.Status
	if status == "" {
		status = model.TaskTodo
	}

	t := model.Task{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		ProjectID:   projectID,
		Status:      status,
		DueDate:     params.DueDate,
		AssignedTo:  params.AssignedTo,
	}

	if err := s.repo.CreateTask(ctx, &t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddTask(t)
	})

	return &t, nil
}

// UpdateTask replaces the task with a matching id; silent no-op when absent.
func (s *Service) UpdateTask(ctx context.Context, t model.Task) error {
	if err := s.repo.UpdateTask(ctx, &t); err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateTask(t)
	})

	return nil
}

// MoveTask overwrites a task's board status. Any transition is accepted;
// moving an unknown task changes nothing.
func (s *Service) MoveTask(ctx context.Context, taskID string, status model.TaskStatus) error {
	if err := s.repo.UpdateTaskStatus(ctx, taskID, status); err != nil {
		return fmt.Errorf("moving task: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.MoveTask(taskID, status)
	})

	return nil
}

// List returns the current projects.
func (s *Service) List() []model.Project {
	return s.store.Snapshot().Projects.Projects
}

// Get looks up one project.
func (s *Service) Get(id string) (model.Project, bool) {
	return s.store.Snapshot().FindProject(id)
}

// GetTask looks up one task.
func (s *Service) GetTask(id string) (model.Task, bool) {
	return s.store.Snapshot().FindTask(id)
}

// Tasks returns the tasks on a project's board.
func (s *Service) Tasks(projectID string) []model.Task {
	return s.store.Snapshot().ProjectTasks(projectID)
}
