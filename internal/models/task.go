package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/artemis-io/agent/internal/common"
)

// DateLayout is the calendar date format the task store understands for due dates.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"

	// Rendered when the store returns a task without a status select
	TaskStatusUnknown TaskStatus = "Unknown"
)

// DefaultTaskStatus is applied to newly created tasks when no status is given.
const DefaultTaskStatus = TaskStatusToDo

// DefaultUpdateStatus is applied when an update names a task but no fields.
const DefaultUpdateStatus = TaskStatusDone

// UntitledTask is rendered for store records with an empty title.
const UntitledTask = "Untitled"

// Task is a single row of the planner database. The ID is assigned by
// the remote store and never generated locally.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DueDate     string     `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	URL         string     `json:"url,omitempty"`
	CreatedTime time.Time  `json:"created_time"`
}

func (t *Task) HasDueDate() bool {
	return len(t.DueDate) > 0
}

// Due returns the due date in the given location.
func (t *Task) Due(loc *time.Location) (time.Time, bool) {
	if !t.HasDueDate() {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// TaskInput holds the arguments of a create operation.
type TaskInput struct {
	Title   string     `json:"title"`
	DueDate string     `json:"due_date,omitempty"`
	Status  TaskStatus `json:"status,omitempty"`
}

// GetStatus returns the requested status or the default one.
func (t *TaskInput) GetStatus() TaskStatus {
	if len(t.Status) == 0 {
		return DefaultTaskStatus
	}
	return t.Status
}

func (t *TaskInput) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}
	return ValidateDueDate(t.DueDate)
}

// TaskUpdate is a partial update addressed by a title substring. Fields
// left empty are not sent to the store.
type TaskUpdate struct {
	TitleSubstring string     `json:"title"`
	Status         TaskStatus `json:"status,omitempty"`
	DueDate        string     `json:"due_date,omitempty"`
}

func (u *TaskUpdate) IsEmpty() bool {
	return len(u.Status) == 0 && len(u.DueDate) == 0
}

func (u *TaskUpdate) Validate() error {
	if len(strings.TrimSpace(u.TitleSubstring)) == 0 {
		return fmt.Errorf("%w: a task title to search for is required", ErrInvalidInput)
	}
	if u.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return ValidateDueDate(u.DueDate)
}

// ValidateDueDate accepts an empty value or a YYYY-MM-DD date.
func ValidateDueDate(date string) error {
	if len(date) == 0 {
		return nil
	}
	if !common.IsValidDate(date, DateLayout) {
		return fmt.Errorf("%w: due date %q must use the YYYY-MM-DD format", ErrInvalidInput, date)
	}
	return nil
}
