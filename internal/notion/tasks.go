package notion

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/artemis-io/agent/internal/models"
)

// CreateTask adds a page to the planner database.
func (c *Client) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {

	if err := input.Validate(); err != nil {
		return nil, err
	}

	properties := map[string]any{
		PropertyName:   newTitleProperty(input.Title),
		PropertyStatus: newSelectProperty(input.GetStatus()),
	}

	if len(input.DueDate) > 0 {
		properties[PropertyDueDate] = newDateProperty(input.DueDate)
	}

	res, err := c.post(ctx, "create_task", "/v1/pages", &createPageRequest{
		Parent:     databaseParent{DatabaseID: c.config.DatabaseID},
		Properties: properties,
	})

	if err != nil {
		return nil, err
	}

	task := parseTask(gjson.ParseBytes(res.Body()))

	logrus.WithFields(logrus.Fields{
		"task": task.ID,
		"name": input.Title,
	}).Info("Created task")

	return &task, nil
}

// ListTasks returns the first page of the database in the store's default
// order. An empty database yields an empty slice and no error.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {

	res, err := c.post(ctx, "get_tasks", c.queryPath(), &queryRequest{})

	if err != nil {
		return nil, err
	}

	return parseTasks(res.Body()), nil
}

// FindTasks returns tasks whose title contains substring, newest first.
func (c *Client) FindTasks(ctx context.Context, substring string) ([]models.Task, error) {

	res, err := c.post(ctx, "find_tasks", c.queryPath(), &queryRequest{
		Filter: &queryFilter{
			Property: PropertyName,
			Title:    &textCondition{Contains: substring},
		},
		Sorts: []querySort{{
			Timestamp: "created_time",
			Direction: "descending",
		}},
	})

	if err != nil {
		return nil, err
	}

	return parseTasks(res.Body()), nil
}

// UpdateTask applies a partial update to the task matching the title
// substring. When several tasks match, the most recently created one is
// updated. No patch is sent when nothing matches.
func (c *Client) UpdateTask(ctx context.Context, update models.TaskUpdate) (*models.Task, error) {

	if err := update.Validate(); err != nil {
		return nil, err
	}

	matches, err := c.FindTasks(ctx, update.TitleSubstring)

	if err != nil {
		return nil, err
	}

	target, found := SelectMatch(matches)

	if !found {
		return nil, fmt.Errorf("%w with name containing '%s'", models.ErrNotFound, update.TitleSubstring)
	}

	if len(matches) > 1 {
		logrus.WithFields(logrus.Fields{
			"search":  update.TitleSubstring,
			"matches": len(matches),
			"task":    target.ID,
		}).Warn("Several tasks match, updating the most recently created")
	}

	properties := map[string]any{}

	if len(update.Status) > 0 {
		properties[PropertyStatus] = newSelectProperty(update.Status)
	}

	if len(update.DueDate) > 0 {
		properties[PropertyDueDate] = newDateProperty(update.DueDate)
	}

	res, err := c.patch(ctx, "update_task", fmt.Sprintf("/v1/pages/%s", target.ID), &updatePageRequest{
		Properties: properties,
	})

	if err != nil {
		return nil, err
	}

	updated := parseTask(gjson.ParseBytes(res.Body()))

	if len(updated.ID) == 0 {
		updated = target
	}

	return &updated, nil
}

// SelectMatch picks the most recently created task. Ties keep the order
// returned by the store.
func SelectMatch(tasks []models.Task) (models.Task, bool) {
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	selected := tasks[0]
	for _, task := range tasks[1:] {
		if task.CreatedTime.After(selected.CreatedTime) {
			selected = task
		}
	}
	return selected, true
}

func (c *Client) queryPath() string {
	return fmt.Sprintf("/v1/databases/%s/query", c.config.DatabaseID)
}
