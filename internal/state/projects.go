package state

import (
	"slices"

	"github.com/mfcruz/gestor/internal/model"
)

// SetProjects replaces the whole project collection.
func (s State) SetProjects(projects []model.Project) State {
	next := s
	next.Projects.Projects = cloneProjects(projects)

	return next
}

// SetTasks replaces the whole task collection.
func (s State) SetTasks(tasks []model.Task) State {
	next := s
	next.Projects.Tasks = slices.Clone(tasks)

	return next
}

// AddProject appends a project. The caller guarantees id uniqueness.
func (s State) AddProject(p model.Project) State {
	next := s
	next.Projects.Projects = append(cloneProjects(s.Projects.Projects), p)

	return next
}

// UpdateProject replaces the project with a matching id. No-op when absent.
func (s State) UpdateProject(p model.Project) State {
	idx := slices.IndexFunc(s.Projects.Projects, func(existing model.Project) bool {
		return existing.ID == p.ID
	})
	if idx == -1 {
		return s
	}

	projects := cloneProjects(s.Projects.Projects)
	projects[idx] = p

	next := s
	next.Projects.Projects = projects

	return next
}

// DeleteProject removes the project and cascades to every task whose
// ProjectID matches. This is the only cross-collection rule in the store.
func (s State) DeleteProject(id string) State {
	next := s
	next.Projects.Projects = slices.DeleteFunc(cloneProjects(s.Projects.Projects), func(p model.Project) bool {
		return p.ID == id
	})
	next.Projects.Tasks = slices.DeleteFunc(slices.Clone(s.Projects.Tasks), func(t model.Task) bool {
		return t.ProjectID == id
	})

	return next
}

// AddTask appends a task. The caller guarantees id uniqueness.
func (s State) AddTask(t model.Task) State {
	next := s
	next.Projects.Tasks = append(slices.Clone(s.Projects.Tasks), t)

	return next
}

// UpdateTask replaces the task with a matching id. No-op when absent.
func (s State) UpdateTask(t model.Task) State {
	idx := slices.IndexFunc(s.Projects.Tasks, func(existing model.Task) bool {
		return existing.ID == t.ID
	})
	if idx == -1 {
		return s
	}

	tasks := slices.Clone(s.Projects.Tasks)
	tasks[idx] = t

	next := s
	next.Projects.Tasks = tasks

	return next
}

// MoveTask overwrites a task's status. Every transition is legal, including
// moving a task to the column it is already in. No-op when the task is
// absent.
func (s State) MoveTask(taskID string, status model.TaskStatus) State {
	idx := slices.IndexFunc(s.Projects.Tasks, func(t model.Task) bool {
		return t.ID == taskID
	})
	if idx == -1 {
		return s
	}

	tasks := slices.Clone(s.Projects.Tasks)
	tasks[idx].Status = status

	next := s
	next.Projects.Tasks = tasks

	return next
}

// FindProject looks up a project by id.
func (s State) FindProject(id string) (model.Project, bool) {
	for _, p := range s.Projects.Projects {
		if p.ID == id {
			return p, true
		}
	}

	return model.Project{}, false
}

// FindTask looks up a task by id.
func (s State) FindTask(id string) (model.Task, bool) {
	for _, t := range s.Projects.Tasks {
		if t.ID == id {
			return t, true
		}
	}

	return model.Task{}, false
}

// ProjectTasks returns the tasks whose ProjectID matches, in insertion
// order.
func (s State) ProjectTasks(projectID string) []model.Task {
	var tasks []model.Task

	for _, t := range s.Projects.Tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}

	return tasks
}
