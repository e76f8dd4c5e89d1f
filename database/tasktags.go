package database

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
)

func (d *Database) getTaskTagsWhere(ctx context.Context, where string, args []any) ([]models.TaskTag, error) {
	q := "SELECT id, name, slug FROM task_tags" + where

	taskTags := []models.TaskTag{}
	err := d.query(ctx, q, args, func(rows pgx.Rows) error {
		for rows.Next() {
			var taskTag models.TaskTag
			if err := rows.Scan(&taskTag.ID, &taskTag.Name, &taskTag.Slug); err != nil {
				return err
			}
			taskTags = append(taskTags, taskTag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return taskTags, nil
}

// GetTaskTags returns all task tags.
func (d *Database) GetTaskTags(ctx context.Context) ([]models.TaskTag, error) {
	return d.getTaskTagsWhere(ctx, "", nil)
}

// GetTaskTag returns one task tag by slug, ErrNotFound when the slug
// does not resolve to exactly one row.
func (d *Database) GetTaskTag(ctx context.Context, taskTagSlug string) (*models.TaskTag, error) {
	taskTags, err := d.getTaskTagsWhere(ctx, " WHERE slug = $1", []any{taskTagSlug})
	if err != nil {
		return nil, err
	}
	if len(taskTags) != 1 {
		return nil, ErrNotFound
	}
	return &taskTags[0], nil
}

func (d *Database) getTaskTagByID(ctx context.Context, id int) (*models.TaskTag, error) {
	taskTags, err := d.getTaskTagsWhere(ctx, " WHERE id = $1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(taskTags) != 1 {
		return nil, ErrNotFound
	}
	return &taskTags[0], nil
}

// InsertTaskTag inserts a task tag, deriving its slug from the name.
func (d *Database) InsertTaskTag(ctx context.Context, name string) (*models.TaskTag, error) {
	q := `
	INSERT INTO
		task_tags (name, slug)
	VALUES
		($1, $2)
	ON CONFLICT DO NOTHING
	RETURNING id, name, slug`

	var taskTag models.TaskTag
	inserted := false
	err := d.query(ctx, q, []any{name, slug.Make(name)}, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(&taskTag.ID, &taskTag.Name, &taskTag.Slug); err != nil {
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
		logging.Logger.Warnf("unable to insert task tag %q", name)
		return nil, fmt.Errorf("unable to insert task tag")
	}

	return &taskTag, nil
}

// UpdateTaskTag applies a partial update and returns the updated task
// tag.
func (d *Database) UpdateTaskTag(ctx context.Context, id int, fields []string, values []any) (*models.TaskTag, error) {
	if err := d.ConditionalUpdate(ctx, "task_tags", id, fields, values); err != nil {
		return nil, err
	}
	return d.getTaskTagByID(ctx, id)
}

// DeleteTaskTag deletes a task tag by slug.
func (d *Database) DeleteTaskTag(ctx context.Context, taskTagSlug string) error {
	count, err := d.exec(ctx, "DELETE FROM task_tags WHERE slug = $1", taskTagSlug)
	if err != nil {
		return err
	}
	if count != 1 {
		logging.Logger.Warnf("unable to delete task tag %q", taskTagSlug)
		return fmt.Errorf("unable to delete task tag %q", taskTagSlug)
	}
	return nil
}
