package models

import "strings"

// ToolKind enumerates the operations the agent can dispatch to.
type ToolKind string

const (
	ToolCreateTask  ToolKind = "create_task"
	ToolGetTasks    ToolKind = "get_tasks"
	ToolUpdateTask  ToolKind = "update_task"
	ToolCurrentTime ToolKind = "current_time"
)

// ToolKinds lists every kind in registration order.
var ToolKinds = []ToolKind{
	ToolCreateTask,
	ToolGetTasks,
	ToolUpdateTask,
	ToolCurrentTime,
}

// ToolDescriptor describes a registered tool to the language model.
type ToolDescriptor struct {
	Kind ToolKind `json:"kind"`

	// Display name, e.g. "Create Task"
	Name string `json:"name"`

	// Identifier safe for function calling APIs, e.g. "create_task"
	Identifier string `json:"identifier"`

	Description string `json:"description"`
}

// Matches reports whether name refers to this tool by display name or identifier.
func (d ToolDescriptor) Matches(name string) bool {
	name = NormalizeToolName(name)
	return strings.EqualFold(name, d.Name) || strings.EqualFold(name, d.Identifier)
}

// NormalizeToolName strips whitespace, quotes and brackets models like to add.
func NormalizeToolName(name string) string {
	return strings.Trim(strings.TrimSpace(name), "\"'`[]* ")
}
