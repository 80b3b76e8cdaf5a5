package tools

import "github.com/artemis-io/agent/internal/models"

// Descriptors holds the description the model sees for each tool kind.
var Descriptors = map[models.ToolKind]models.ToolDescriptor{
	models.ToolCreateTask: {
		Kind:       models.ToolCreateTask,
		Name:       "Create Task",
		Identifier: string(models.ToolCreateTask),
		Description: "Use this to add a task to the Notion Student Planner. " +
			"Input format: title|due_date|status. due_date is optional and must be YYYY-MM-DD. " +
			"status is optional and defaults to 'To Do'. Example: Finish project|2025-05-10|In Progress",
	},
	models.ToolGetTasks: {
		Kind:        models.ToolGetTasks,
		Name:        "Get Tasks",
		Identifier:  string(models.ToolGetTasks),
		Description: "Use this to retrieve the list of tasks from the Notion Student Planner. Input is ignored.",
	},
	models.ToolUpdateTask: {
		Kind:       models.ToolUpdateTask,
		Name:       "Update Task",
		Identifier: string(models.ToolUpdateTask),
		Description: "Use this to update an existing task. Input format: title|status|due_date where title is part of the task name. " +
			"status and due_date are optional; when both are omitted the task is marked Done. Example: project|In Progress|2025-05-12",
	},
	models.ToolCurrentTime: {
		Kind:        models.ToolCurrentTime,
		Name:        "Current Time",
		Identifier:  string(models.ToolCurrentTime),
		Description: "Use this to get the current date and time, for example to turn 'tomorrow' into a YYYY-MM-DD due date. Input is ignored.",
	},
}
