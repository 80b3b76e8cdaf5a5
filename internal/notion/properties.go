package notion

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/artemis-io/agent/internal/models"
)

// Property names of the planner database schema.
const (
	PropertyName    = "Name"
	PropertyStatus  = "Status"
	PropertyDueDate = "Due Date"
)

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text textContent `json:"text"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type selectOption struct {
	Name string `json:"name"`
}

type selectProperty struct {
	Select selectOption `json:"select"`
}

type dateValue struct {
	Start string `json:"start"`
}

type dateProperty struct {
	Date dateValue `json:"date"`
}

type databaseParent struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     databaseParent `json:"parent"`
	Properties map[string]any `json:"properties"`
}

type updatePageRequest struct {
	Properties map[string]any `json:"properties"`
}

type textCondition struct {
	Contains string `json:"contains"`
}

type queryFilter struct {
	Property string         `json:"property"`
	Title    *textCondition `json:"title,omitempty"`
}

type querySort struct {
	Timestamp string `json:"timestamp,omitempty"`
	Property  string `json:"property,omitempty"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Filter *queryFilter `json:"filter,omitempty"`
	Sorts  []querySort  `json:"sorts,omitempty"`
}

func newTitleProperty(title string) titleProperty {
	return titleProperty{
		Title: []richText{{Text: textContent{Content: title}}},
	}
}

func newSelectProperty(name models.TaskStatus) selectProperty {
	return selectProperty{Select: selectOption{Name: string(name)}}
}

func newDateProperty(start string) dateProperty {
	return dateProperty{Date: dateValue{Start: start}}
}

// parseTask reads a page object. Missing values fall back to the
// placeholders the list rendering expects.
func parseTask(page gjson.Result) models.Task {

	task := models.Task{
		ID:     page.Get("id").String(),
		URL:    page.Get("url").String(),
		Title:  models.UntitledTask,
		Status: models.TaskStatusUnknown,
	}

	properties := page.Get("properties")

	for _, path := range []string{
		PropertyName + ".title.0.text.content",
		PropertyName + ".title.0.plain_text",
	} {
		if title := properties.Get(path).String(); len(title) > 0 {
			task.Title = title
			break
		}
	}

	// Databases created from templates use a status property instead of a select
	for _, path := range []string{
		PropertyStatus + ".select.name",
		PropertyStatus + ".status.name",
	} {
		if status := properties.Get(path).String(); len(status) > 0 {
			task.Status = models.TaskStatus(status)
			break
		}
	}

	task.DueDate = properties.Get(PropertyDueDate + ".date.start").String()

	if created := page.Get("created_time").String(); len(created) > 0 {
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			task.CreatedTime = ts
		}
	}

	return task
}

func parseTasks(body []byte) []models.Task {
	results := gjson.GetBytes(body, "results").Array()
	tasks := make([]models.Task, 0, len(results))
	for _, result := range results {
		tasks = append(tasks, parseTask(result))
	}
	return tasks
}
