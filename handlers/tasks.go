package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vefforritun/verkefni-api/database"
	"github.com/vefforritun/verkefni-api/models"
	"github.com/vefforritun/verkefni-api/validation"
)

// TaskHandler serves the /verkefni routes.
type TaskHandler struct {
	store Store
	rules *validation.Rules
}

func NewTaskHandler(store Store) *TaskHandler {
	return &TaskHandler{store: store, rules: validation.NewRules(store)}
}

// taskPayload is the parsed request body; pointers so a PATCH can tell
// "absent" from "empty".
type taskPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	TaskTypeID  *int    `json:"task_type_id"`
	TaskTagID   *int    `json:"task_tag_id"`
	UserID      *int    `json:"user_id"`
}

// List returns tasks, at most the clamped limit.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.store.GetTasks(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get tasks"})
	}
	return c.Status(200).JSON(tasks)
}

// Get returns one task by id.
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "task not found"})
	}

	task, err := h.store.GetTask(c.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task"})
	}

	return c.Status(200).JSON(task)
}

// Create validates, sanitizes and inserts a new task.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	payload := new(taskPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name, payload.Description, payload.Date),
		},
		Validate: []validation.Step{
			validation.RequiredString("name", payload.Name, 64),
			validation.OptionalString("description", payload.Description, 1000),
			validation.ValidDate("date", payload.Date, false),
			h.rules.TaskTypeIDExists("task_type_id", payload.TaskTypeID),
			h.rules.TaskTagIDExists("task_tag_id", payload.TaskTagID),
			h.rules.UserIDExists("user_id", payload.UserID),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name, payload.Description, payload.Date),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	date, err := validation.ParseDate(*payload.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid date"})
	}

	description := ""
	if payload.Description != nil {
		description = *payload.Description
	}

	task, err := h.store.InsertTask(c.Context(), models.NewTask{
		Name:        *payload.Name,
		Description: description,
		Date:        date,
		TaskTypeID:  *payload.TaskTypeID,
		TaskTagID:   *payload.TaskTagID,
		UserID:      *payload.UserID,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not create task"})
	}

	return c.Status(201).JSON(task)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "task not found"})
	}

	if _, err := h.store.GetTask(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "task not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "could not get task"})
	}

	payload := new(taskPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	validate := []validation.Step{
		validation.OptionalString("name", payload.Name, 64),
		validation.OptionalString("description", payload.Description, 1000),
		validation.ValidDate("date", payload.Date, true),
		validation.AtLeastOneOf(
			[]string{"name", "description", "date", "task_type_id", "task_tag_id"},
			payload.Name, payload.Description, payload.Date, payload.TaskTypeID, payload.TaskTagID,
		),
	}
	if payload.TaskTypeID != nil {
		validate = append(validate, h.rules.TaskTypeIDExists("task_type_id", payload.TaskTypeID))
	}
	if payload.TaskTagID != nil {
		validate = append(validate, h.rules.TaskTagIDExists("task_tag_id", payload.TaskTagID))
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name, payload.Description, payload.Date),
		},
		Validate: validate,
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name, payload.Description, payload.Date),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	fields := []string{"name", "description", "date", "task_type_id", "task_tag_id"}
	values := make([]any, len(fields))
	if payload.Name != nil {
		values[0] = *payload.Name
	}
	if payload.Description != nil {
		values[1] = *payload.Description
	}
	if payload.Date != nil {
		date, err := validation.ParseDate(*payload.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid date"})
		}
		values[2] = date
	}
	if payload.TaskTypeID != nil {
		values[3] = *payload.TaskTypeID
	}
	if payload.TaskTagID != nil {
		values[4] = *payload.TaskTagID
	}

	task, err := h.store.UpdateTask(c.Context(), id, fields, values)
	if errors.Is(err, database.ErrNoFields) {
		return c.Status(400).JSON(fiber.Map{"error": "no fields to update"})
	}
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not update task"})
	}

	return c.Status(200).JSON(task)
}

// Delete deletes a task by id.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete task"})
	}

	if err := h.store.DeleteTask(c.Context(), id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete task"})
	}

	return c.SendStatus(204)
}
