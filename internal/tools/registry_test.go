package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artemis-io/agent/internal/models"
)

type fakeStore struct {
	tasks   []models.Task
	err     error
	created []models.TaskInput
	updated []models.TaskUpdate
}

func (f *fakeStore) CreateTask(_ context.Context, input models.TaskInput) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	f.created = append(f.created, input)
	return &models.Task{ID: "new", Title: input.Title, Status: input.GetStatus(), DueDate: input.DueDate}, nil
}

func (f *fakeStore) ListTasks(_ context.Context) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, update models.TaskUpdate) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, update)
	for _, task := range f.tasks {
		if strings.Contains(task.Title, update.TitleSubstring) {
			return &task, nil
		}
	}
	return nil, fmt.Errorf("%w with name containing '%s'", models.ErrNotFound, update.TitleSubstring)
}

var fixedNow = time.Date(2025, time.May, 7, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func TestRegistry_DescriptorsInOrder(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	assert.Equal(t, []string{"Create Task", "Get Tasks", "Update Task", "Current Time"}, registry.Names())

	for _, descriptor := range registry.Descriptors() {
		assert.NotEmpty(t, descriptor.Description, descriptor.Name)
		assert.NotEmpty(t, descriptor.Identifier, descriptor.Name)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	tests := []struct {
		name     string
		expected models.ToolKind
		found    bool
	}{
		{"Create Task", models.ToolCreateTask, true},
		{"create task", models.ToolCreateTask, true},
		{"create_task", models.ToolCreateTask, true},
		{" \"Get Tasks\" ", models.ToolGetTasks, true},
		{"[Update Task]", models.ToolUpdateTask, true},
		{"Current Time", models.ToolCurrentTime, true},
		{"Delete Task", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		descriptor, found := registry.Lookup(test.name)
		assert.Equal(t, test.found, found, "Lookup(%q)", test.name)
		assert.Equal(t, test.expected, descriptor.Kind, "Lookup(%q)", test.name)
	}
}

func TestRegistry_InvokeUnknownTool(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	out := registry.Invoke(context.Background(), "Delete Task", "essay")
	assert.Equal(t, "Delete Task is not a valid tool, try one of [Create Task, Get Tasks, Update Task, Current Time].", out)
}

func TestRegistry_CreateTask(t *testing.T) {
	store := &fakeStore{}
	registry := NewRegistry(store, fixedClock)

	out := registry.Invoke(context.Background(), "Create Task", "Finish project|2025-05-10|In Progress")

	assert.Equal(t, `✅ Task created: "Finish project" (In Progress, due 2025-05-10)`, out)
	require.Len(t, store.created, 1)
	assert.Equal(t, models.TaskInput{
		Title:   "Finish project",
		DueDate: "2025-05-10",
		Status:  models.TaskStatusInProgress,
	}, store.created[0])
}

func TestRegistry_CreateTaskInvalidInput(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	out := registry.Invoke(context.Background(), "Create Task", "Essay|next week")
	assert.Equal(t, `❌ Invalid input: due date "next week" must use the YYYY-MM-DD format`, out)

	out = registry.Invoke(context.Background(), "Create Task", "  ")
	assert.Equal(t, "❌ Invalid input: task title is required", out)
}

func TestRegistry_RemoteFailureIsText(t *testing.T) {
	registry := NewRegistry(&fakeStore{
		err: &models.RemoteError{
			Operation:  "create_task",
			StatusCode: http.StatusBadRequest,
			Body:       `{"message":"body failed validation"}`,
		},
	}, fixedClock)

	out := registry.Invoke(context.Background(), "Create Task", "Essay")
	assert.Equal(t, `❌ Failed: {"message":"body failed validation"}`, out)

	out = registry.Invoke(context.Background(), "Get Tasks", "")
	assert.Equal(t, `❌ Failed: {"message":"body failed validation"}`, out)
}

func TestRegistry_GetTasks(t *testing.T) {
	registry := NewRegistry(&fakeStore{
		tasks: []models.Task{
			{Title: "Finish project", Status: models.TaskStatusInProgress, DueDate: "2025-05-10"},
			{Title: "Buy milk", Status: models.TaskStatusToDo},
		},
	}, fixedClock)

	out := registry.Invoke(context.Background(), "Get Tasks", "")

	assert.Equal(t,
		"📌 Finish project - In Progress - Due: 2025-05-10 (3 days from now)\n"+
			"📌 Buy milk - To Do - Due: No Date",
		out)
}

func TestRegistry_GetTasksEmptyStore(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	assert.Equal(t, "No tasks found.", registry.Invoke(context.Background(), "Get Tasks", "anything"))
	assert.Equal(t, "", RenderTasks(nil, fixedNow))
}

func TestRegistry_UpdateTask(t *testing.T) {
	store := &fakeStore{
		tasks: []models.Task{{Title: "Finish project", Status: models.TaskStatusToDo}},
	}
	registry := NewRegistry(store, fixedClock)

	out := registry.Invoke(context.Background(), "Update Task", "project")
	assert.Equal(t, `✅ Task updated: "Finish project" (status Done)`, out)

	out = registry.Invoke(context.Background(), "update_task", "project|In Progress|2025-05-12")
	assert.Equal(t, `✅ Task updated: "Finish project" (status In Progress, due 2025-05-12)`, out)

	require.Len(t, store.updated, 2)
	assert.Equal(t, models.TaskStatusDone, store.updated[0].Status)
}

func TestRegistry_UpdateTaskNotFound(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	out := registry.Invoke(context.Background(), "Update Task", "essay|Done")
	assert.Equal(t, "❌ No task found with name containing 'essay'", out)
}

func TestRegistry_CurrentTime(t *testing.T) {
	registry := NewRegistry(&fakeStore{}, fixedClock)

	out := registry.Invoke(context.Background(), "Current Time", "")
	assert.Equal(t, "Current date and time: 2025-05-07 09:30 UTC (today is Wednesday)", out)
}

func TestRenderTask_RelativeDueDates(t *testing.T) {
	tests := []struct {
		due      string
		expected string
	}{
		{"2025-05-07", "📌 Essay - To Do - Due: 2025-05-07 (today)"},
		{"2025-05-08", "📌 Essay - To Do - Due: 2025-05-08 (1 day from now)"},
		{"2025-05-04", "📌 Essay - To Do - Due: 2025-05-04 (3 days ago)"},
		{"someday", "📌 Essay - To Do - Due: someday"},
	}

	for _, test := range tests {
		task := models.Task{Title: "Essay", Status: models.TaskStatusToDo, DueDate: test.due}
		assert.Equal(t, test.expected, RenderTask(task, fixedNow), "RenderTask(%q)", test.due)
	}
}
