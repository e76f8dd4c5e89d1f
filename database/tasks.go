package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
)

const taskSelect = `
	SELECT
		tasks.id AS id,
		tasks.name,
		tasks.description,
		tasks.date,
		task_type.id AS task_type_id, task_type.name AS task_type_name,
		task_tag.id AS task_tag_id, task_tag.name AS task_tag_name,
		tasks.user_id
	FROM
		tasks
	LEFT JOIN
		task_types AS task_type ON task_type.id = tasks.task_type_id
	LEFT JOIN
		task_tags AS task_tag ON task_tag.id = tasks.task_tag_id`

// clampLimit keeps list queries bounded: non-positive requests fall back
// to the ceiling, anything above it is cut down.
func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxTasks {
		return MaxTasks
	}
	return limit
}

func scanTask(rows pgx.Rows) (models.Task, error) {
	var task models.Task
	err := rows.Scan(
		&task.ID, &task.Name, &task.Description, &task.Date,
		&task.TaskType.ID, &task.TaskType.Name,
		&task.TaskTag.ID, &task.TaskTag.Name,
		&task.UserID,
	)
	return task, err
}

// GetTasks returns up to limit tasks, newest first, with their type and
// tag joined in.
func (d *Database) GetTasks(ctx context.Context, limit int) ([]models.Task, error) {
	q := taskSelect + `
	ORDER BY
		tasks.date DESC
	LIMIT $1`

	tasks := []models.Task{}
	err := d.query(ctx, q, []any{clampLimit(limit)}, func(rows pgx.Rows) error {
		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetTask returns one task by id, ErrNotFound when the id does not
// resolve to exactly one row.
func (d *Database) GetTask(ctx context.Context, id int) (*models.Task, error) {
	q := taskSelect + `
	WHERE
		tasks.id = $1`

	var tasks []models.Task
	err := d.query(ctx, q, []any{id}, func(rows pgx.Rows) error {
		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(tasks) != 1 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// InsertTask inserts a task and returns it with type and tag joined.
func (d *Database) InsertTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	q := `
	INSERT INTO
		tasks (name, description, date, task_type_id, task_tag_id, user_id)
	VALUES
		($1, $2, $3, $4, $5, $6)
	RETURNING id`

	var id int
	inserted := false
	err := d.query(ctx, q, []any{
		task.Name, task.Description, task.Date,
		task.TaskTypeID, task.TaskTagID, task.UserID,
	}, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(&id); err != nil {
				return err
			}
			inserted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		logging.Logger.Warnf("unable to insert task %q", task.Name)
		return nil, fmt.Errorf("unable to insert task")
	}

	return d.GetTask(ctx, id)
}

// UpdateTask applies a partial update and returns the updated task.
func (d *Database) UpdateTask(ctx context.Context, id int, fields []string, values []any) (*models.Task, error) {
	if err := d.ConditionalUpdate(ctx, "tasks", id, fields, values); err != nil {
		return nil, err
	}
	return d.GetTask(ctx, id)
}

// DeleteTask deletes a task by id. Deleting a task that does not exist
// is a failure, matching the insert/delete contract of the HTTP layer.
func (d *Database) DeleteTask(ctx context.Context, id int) error {
	count, err := d.exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if count != 1 {
		logging.Logger.Warnf("unable to delete task %d", id)
		return fmt.Errorf("unable to delete task %d", id)
	}
	return nil
}
