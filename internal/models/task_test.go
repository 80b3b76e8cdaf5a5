package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   TaskInput
		wantErr bool
	}{
		{"title only", TaskInput{Title: "Buy milk"}, false},
		{"full", TaskInput{Title: "Finish project", DueDate: "2025-05-10", Status: TaskStatusInProgress}, false},
		{"blank title", TaskInput{Title: "   "}, true},
		{"bad date", TaskInput{Title: "Essay", DueDate: "next friday"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskInput_GetStatus(t *testing.T) {
	input := TaskInput{Title: "Buy milk"}
	assert.Equal(t, TaskStatusToDo, input.GetStatus())

	input.Status = TaskStatusDone
	assert.Equal(t, TaskStatusDone, input.GetStatus())
}

func TestTaskUpdate_Validate(t *testing.T) {
	assert.NoError(t, (&TaskUpdate{TitleSubstring: "essay", Status: TaskStatusDone}).Validate())
	assert.NoError(t, (&TaskUpdate{TitleSubstring: "essay", DueDate: "2025-06-01"}).Validate())
	assert.ErrorIs(t, (&TaskUpdate{TitleSubstring: "essay"}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&TaskUpdate{Status: TaskStatusDone}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&TaskUpdate{TitleSubstring: "essay", DueDate: "06/01"}).Validate(), ErrInvalidInput)
}

func TestTask_Due(t *testing.T) {
	task := Task{Title: "Essay", DueDate: "2025-05-10"}

	due, ok := task.Due(time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC), due)

	_, ok = (&Task{Title: "Essay"}).Due(time.UTC)
	assert.False(t, ok)

	_, ok = (&Task{Title: "Essay", DueDate: "soon"}).Due(time.UTC)
	assert.False(t, ok)
}

func TestRemoteError(t *testing.T) {
	var err error = &RemoteError{Operation: "create_task", StatusCode: 400, Body: `{"message":"bad"}`}

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Contains(t, err.Error(), "status 400")

	var remote *RemoteError
	assert.True(t, errors.As(err, &remote))
	assert.Equal(t, `{"message":"bad"}`, remote.Body)
}

func TestMalformedOutputError(t *testing.T) {
	err := NewMalformedOutputError("missing 'Action:'", "I think so")

	assert.ErrorIs(t, err, ErrMalformedModelOutput)
	assert.Equal(t, "could not parse language model output: missing 'Action:'", err.Error())
}

func TestMarkers(t *testing.T) {
	assert.Equal(t, "❌ Failed: boom", Failure("Failed: %s", "boom"))
	assert.Equal(t, "✅ Task created!", Success("Task created!"))
}

func TestToolDescriptor_Matches(t *testing.T) {
	d := ToolDescriptor{Kind: ToolCreateTask, Name: "Create Task", Identifier: "create_task"}

	assert.True(t, d.Matches("Create Task"))
	assert.True(t, d.Matches("  create task "))
	assert.True(t, d.Matches(`"Create Task"`))
	assert.True(t, d.Matches("[create_task]"))
	assert.False(t, d.Matches("Update Task"))
}

func TestAgentTurn(t *testing.T) {
	turn := NewAgentTurn("hello")

	_, ok := turn.LastStep()
	assert.False(t, ok)

	turn.AddStep(AgentStep{Tool: "Get Tasks", Output: "No tasks found."})
	last, ok := turn.LastStep()
	assert.True(t, ok)
	assert.Equal(t, "No tasks found.", last.Output)

	turn.Finish(TurnOutcomeAnswered, "Nothing to do")
	assert.Equal(t, TurnOutcomeAnswered, turn.Outcome)
	assert.GreaterOrEqual(t, turn.Duration(), time.Duration(0))
}
