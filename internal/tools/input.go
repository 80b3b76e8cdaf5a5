package tools

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artemis-io/agent/internal/models"
)

// FieldSeparator splits positional arguments of multi-argument tools.
const FieldSeparator = "|"

// ParseFields splits input into exactly count positional fields. Fields are
// trimmed; missing trailing fields and whitespace-only fields come back
// empty, which callers treat as unset.
func ParseFields(input string, count int) []string {

	fields := make([]string, count)

	if count <= 0 {
		return fields
	}

	parts := strings.Split(input, FieldSeparator)

	if len(parts) > count {
		logrus.WithFields(logrus.Fields{
			"input":    input,
			"expected": count,
			"found":    len(parts),
		}).Debug("Ignoring extra tool input fields")
	}

	for i := 0; i < count && i < len(parts); i++ {
		fields[i] = strings.TrimSpace(parts[i])
	}

	return fields
}

// ParseCreateInput reads "title|due_date|status".
func ParseCreateInput(input string) models.TaskInput {
	fields := ParseFields(input, 3)
	return models.TaskInput{
		Title:   fields[0],
		DueDate: fields[1],
		Status:  parseStatus(fields[2], models.DefaultTaskStatus),
	}
}

// ParseUpdateInput reads "title|status|due_date". A bare title marks the
// task as done.
func ParseUpdateInput(input string) models.TaskUpdate {
	fields := ParseFields(input, 3)
	update := models.TaskUpdate{
		TitleSubstring: fields[0],
		Status:         parseStatus(fields[1], ""),
		DueDate:        fields[2],
	}
	if update.IsEmpty() {
		update.Status = models.DefaultUpdateStatus
	}
	return update
}

// parseStatus maps case variations of the known statuses onto their
// canonical spelling and passes anything else through untouched.
func parseStatus(value string, fallback models.TaskStatus) models.TaskStatus {
	if len(value) == 0 {
		return fallback
	}
	for _, known := range []models.TaskStatus{
		models.TaskStatusToDo,
		models.TaskStatusInProgress,
		models.TaskStatusDone,
	} {
		if strings.EqualFold(value, string(known)) {
			return known
		}
	}
	return models.TaskStatus(value)
}
