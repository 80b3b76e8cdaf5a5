package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/artemis-io/agent/internal/models"
)

const noDueDate = "No Date"

// RenderTasks renders one line per task. An empty list renders as the
// empty string.
func RenderTasks(tasks []models.Task, now time.Time) string {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, RenderTask(task, now))
	}
	return strings.Join(lines, "\n")
}

func RenderTask(task models.Task, now time.Time) string {
	return fmt.Sprintf("%s %s - %s - Due: %s",
		models.TaskMarker, task.Title, task.Status, renderDueDate(task, now))
}

func renderDueDate(task models.Task, now time.Time) string {

	if !task.HasDueDate() {
		return noDueDate
	}

	due, ok := task.Due(now.Location())
	if !ok {
		return task.DueDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if due.Equal(today) {
		return fmt.Sprintf("%s (today)", task.DueDate)
	}

	return fmt.Sprintf("%s (%s)", task.DueDate, humanize.RelTime(due, today, "ago", "from now"))
}

func renderCreated(task *models.Task, input models.TaskInput) string {
	title := task.Title
	if len(title) == 0 || title == models.UntitledTask {
		title = input.Title
	}
	details := []string{string(input.GetStatus())}
	if len(input.DueDate) > 0 {
		details = append(details, "due "+input.DueDate)
	}
	return models.Success("Task created: %q (%s)", title, strings.Join(details, ", "))
}

func renderUpdated(task *models.Task, update models.TaskUpdate) string {
	var changes []string
	if len(update.Status) > 0 {
		changes = append(changes, fmt.Sprintf("status %s", update.Status))
	}
	if len(update.DueDate) > 0 {
		changes = append(changes, fmt.Sprintf("due %s", update.DueDate))
	}
	return models.Success("Task updated: %q (%s)", task.Title, strings.Join(changes, ", "))
}
