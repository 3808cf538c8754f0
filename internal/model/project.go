package model

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not-started"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Project is a piece of contracted work. ClientID is a loose reference and
// may point at a client that no longer exists.
type Project struct {
	ID          string
	Name        string
	Description string
	ClientID    string
	Status      ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
	Budget      int64 // Budget in cents
	Attachments []string
}

// TaskStatus is the three-state board column a task sits in. Any transition,
// including a no-op, is legal.
type TaskStatus string

const (
	TaskTodo  TaskStatus = "todo"
	TaskDoing TaskStatus = "doing"
	TaskDone  TaskStatus = "done"
)

// Task belongs to a project and is deleted only when its project is deleted.
type Task struct {
	ID          string
	Title       string
	Description string
	ProjectID   string
	Status      TaskStatus
	DueDate     time.Time
	AssignedTo  string
}
