package models

import "time"

// TaskType categorises tasks. The slug is derived from the name and is
// the lookup key on the HTTP surface.
type TaskType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// TaskTag labels tasks, same lifecycle as TaskType but without a
// description.
type TaskTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TaskRef is the joined id/name pair embedded in a task response.
type TaskRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Task is a single tracked task with its type and tag joined in.
type Task struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TaskType    TaskRef   `json:"task_type"`
	TaskTag     TaskRef   `json:"task_tag"`
	UserID      int       `json:"user_id"`
}

// NewTask carries the column values for an insert.
type NewTask struct {
	Name        string
	Description string
	Date        time.Time
	TaskTypeID  int
	TaskTagID   int
	UserID      int
}
