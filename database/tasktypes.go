package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
)

// ParseTaskTypeNames parses a JSON array of task type names, as handed
// to the seeding path. Entries that are not strings are skipped.
func ParseTaskTypeNames(data string) ([]string, error) {
	var parsed []any
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return nil, fmt.Errorf("unable to parse task-type data: %w", err)
	}

	names := []string{}
	for _, entry := range parsed {
		name, ok := entry.(string)
		if !ok {
			logging.Logger.Warnf("skipping illegal task-type entry %v", entry)
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

func (d *Database) getTaskTypesWhere(ctx context.Context, where string, args []any) ([]models.TaskType, error) {
	q := "SELECT id, name, slug, description FROM task_types" + where

	taskTypes := []models.TaskType{}
	err := d.query(ctx, q, args, func(rows pgx.Rows) error {
		for rows.Next() {
			var taskType models.TaskType
			if err := rows.Scan(&taskType.ID, &taskType.Name, &taskType.Slug, &taskType.Description); err != nil {
				return err
			}
			taskTypes = append(taskTypes, taskType)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return taskTypes, nil
}

// GetTaskTypes returns all task types.
func (d *Database) GetTaskTypes(ctx context.Context) ([]models.TaskType, error) {
	return d.getTaskTypesWhere(ctx, "", nil)
}

// GetTaskType returns one task type by slug, ErrNotFound when the slug
// does not resolve to exactly one row.
func (d *Database) GetTaskType(ctx context.Context, taskTypeSlug string) (*models.TaskType, error) {
	taskTypes, err := d.getTaskTypesWhere(ctx, " WHERE slug = $1", []any{taskTypeSlug})
	if err != nil {
		return nil, err
	}
	if len(taskTypes) != 1 {
		return nil, ErrNotFound
	}
	return &taskTypes[0], nil
}

func (d *Database) getTaskTypeByID(ctx context.Context, id int) (*models.TaskType, error) {
	taskTypes, err := d.getTaskTypesWhere(ctx, " WHERE id = $1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(taskTypes) != 1 {
		return nil, ErrNotFound
	}
	return &taskTypes[0], nil
}

// InsertTaskType inserts a task type, deriving its slug from the name.
// A slug collision inserts nothing and is reported as a failure.
func (d *Database) InsertTaskType(ctx context.Context, name, description string) (*models.TaskType, error) {
	q := `
	INSERT INTO
		task_types (name, slug, description)
	VALUES
		($1, $2, $3)
	ON CONFLICT DO NOTHING
	RETURNING id, name, slug, description`

	var taskType models.TaskType
	inserted := false
	err := d.query(ctx, q, []any{name, slug.Make(name), description}, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(&taskType.ID, &taskType.Name, &taskType.Slug, &taskType.Description); err != nil {
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
		logging.Logger.Warnf("unable to insert task type %q", name)
		return nil, fmt.Errorf("unable to insert task type")
	}

	return &taskType, nil
}

// InsertTaskTypes inserts many task types, skipping the ones that fail.
func (d *Database) InsertTaskTypes(ctx context.Context, names []string) []models.TaskType {
	inserted := []models.TaskType{}
	for _, name := range names {
		taskType, err := d.InsertTaskType(ctx, name, "")
		if err != nil {
			logging.Logger.Warnf("unable to insert task type %q: %v", name, err)
			continue
		}
		inserted = append(inserted, *taskType)
	}
	return inserted
}

// UpdateTaskType applies a partial update and returns the updated task
// type.
func (d *Database) UpdateTaskType(ctx context.Context, id int, fields []string, values []any) (*models.TaskType, error) {
	if err := d.ConditionalUpdate(ctx, "task_types", id, fields, values); err != nil {
		return nil, err
	}
	return d.getTaskTypeByID(ctx, id)
}

// DeleteTaskType deletes a task type by slug.
func (d *Database) DeleteTaskType(ctx context.Context, taskTypeSlug string) error {
	count, err := d.exec(ctx, "DELETE FROM task_types WHERE slug = $1", taskTypeSlug)
	if err != nil {
		return err
	}
	if count != 1 {
		logging.Logger.Warnf("unable to delete task type %q", taskTypeSlug)
		return fmt.Errorf("unable to delete task type %q", taskTypeSlug)
	}
	return nil
}
