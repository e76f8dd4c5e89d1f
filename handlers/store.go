package handlers

import (
	"context"

	"github.com/vefforritun/verkefni-api/models"
	"github.com/vefforritun/verkefni-api/validation"
)

// Store is everything the route handlers need from the data layer. It
// embeds the slice the validation rules use so one handle serves both.
type Store interface {
	validation.Store

	GetTasks(ctx context.Context, limit int) ([]models.Task, error)
	GetTask(ctx context.Context, id int) (*models.Task, error)
	InsertTask(ctx context.Context, task models.NewTask) (*models.Task, error)
	UpdateTask(ctx context.Context, id int, fields []string, values []any) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error

	InsertTaskType(ctx context.Context, name, description string) (*models.TaskType, error)
	UpdateTaskType(ctx context.Context, id int, fields []string, values []any) (*models.TaskType, error)
	DeleteTaskType(ctx context.Context, slug string) error

	InsertTaskTag(ctx context.Context, name string) (*models.TaskTag, error)
	UpdateTaskTag(ctx context.Context, id int, fields []string, values []any) (*models.TaskTag, error)
	DeleteTaskTag(ctx context.Context, slug string) error

	InsertUser(ctx context.Context, user models.NewUser) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}
