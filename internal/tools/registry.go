package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artemis-io/agent/internal/models"
)

// TaskStore is the remote task database the tools operate on.
type TaskStore interface {
	CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, update models.TaskUpdate) (*models.Task, error)
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

type handlerFunc func(ctx context.Context, input string) string

type entry struct {
	descriptor models.ToolDescriptor
	handle     handlerFunc
}

// Registry is the fixed dispatch table of tools. It is built once and is
// read-only afterwards.
type Registry struct {
	store   TaskStore
	clock   Clock
	entries []entry
}

func NewRegistry(store TaskStore, clock Clock) *Registry {

	if clock == nil {
		clock = time.Now
	}

	r := &Registry{
		store: store,
		clock: clock,
	}

	handlers := map[models.ToolKind]handlerFunc{
		models.ToolCreateTask:  r.createTask,
		models.ToolGetTasks:    r.getTasks,
		models.ToolUpdateTask:  r.updateTask,
		models.ToolCurrentTime: r.currentTime,
	}

	for _, kind := range models.ToolKinds {
		r.entries = append(r.entries, entry{
			descriptor: Descriptors[kind],
			handle:     handlers[kind],
		})
	}

	return r
}

// Descriptors returns the tool descriptors in registration order.
func (r *Registry) Descriptors() []models.ToolDescriptor {
	out := make([]models.ToolDescriptor, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.descriptor)
	}
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.descriptor.Name)
	}
	return names
}

// Lookup resolves a tool by display name or identifier.
func (r *Registry) Lookup(name string) (models.ToolDescriptor, bool) {
	if e, ok := r.find(name); ok {
		return e.descriptor, true
	}
	return models.ToolDescriptor{}, false
}

func (r *Registry) find(name string) (*entry, bool) {
	for i := range r.entries {
		if r.entries[i].descriptor.Matches(name) {
			return &r.entries[i], true
		}
	}
	return nil, false
}

// Invoke runs the named tool. Failures are returned as text so the model
// can relay them; Invoke never fails the caller.
func (r *Registry) Invoke(ctx context.Context, name string, input string) string {

	e, ok := r.find(name)

	if !ok {
		logrus.WithFields(logrus.Fields{
			"tool": name,
		}).Debug("Model selected an unknown tool")
		return fmt.Sprintf("%s is not a valid tool, try one of [%s].",
			models.NormalizeToolName(name), strings.Join(r.Names(), ", "))
	}

	logrus.WithFields(logrus.Fields{
		"tool":  e.descriptor.Name,
		"input": input,
	}).Debug("Invoking tool")

	return e.handle(ctx, input)
}

func (r *Registry) createTask(ctx context.Context, input string) string {

	args := ParseCreateInput(input)

	task, err := r.store.CreateTask(ctx, args)

	if err != nil {
		logrus.WithError(err).WithField("tool", models.ToolCreateTask).Warn("Failed to create task")
		return renderFailure(err)
	}

	return renderCreated(task, args)
}

func (r *Registry) getTasks(ctx context.Context, _ string) string {

	tasks, err := r.store.ListTasks(ctx)

	if err != nil {
		logrus.WithError(err).WithField("tool", models.ToolGetTasks).Warn("Failed to list tasks")
		return renderFailure(err)
	}

	if len(tasks) == 0 {
		return "No tasks found."
	}

	return RenderTasks(tasks, r.clock())
}

func (r *Registry) updateTask(ctx context.Context, input string) string {

	args := ParseUpdateInput(input)

	task, err := r.store.UpdateTask(ctx, args)

	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Failure("No task found with name containing '%s'", args.TitleSubstring)
		}
		logrus.WithError(err).WithField("tool", models.ToolUpdateTask).Warn("Failed to update task")
		return renderFailure(err)
	}

	return renderUpdated(task, args)
}

func (r *Registry) currentTime(_ context.Context, _ string) string {
	now := r.clock()
	return fmt.Sprintf("Current date and time: %s (today is %s)",
		now.Format("2006-01-02 15:04 MST"), now.Weekday())
}

func renderFailure(err error) string {

	var remoteErr *models.RemoteError

	switch {
	case errors.As(err, &remoteErr):
		return models.Failure("Failed: %s", remoteErr.Body)
	case errors.Is(err, models.ErrInvalidInput):
		return models.Failure("Invalid input: %s", strings.TrimPrefix(err.Error(), models.ErrInvalidInput.Error()+": "))
	default:
		return models.Failure("Failed: %v", err)
	}
}
