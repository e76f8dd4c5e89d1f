package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/vefforritun/verkefni-api/database"
	"github.com/vefforritun/verkefni-api/validation"
)

// TaskTypeHandler serves the /flokkar routes.
type TaskTypeHandler struct {
	store Store
	rules *validation.Rules
}

func NewTaskTypeHandler(store Store) *TaskTypeHandler {
	return &TaskTypeHandler{store: store, rules: validation.NewRules(store)}
}

type taskTypePayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List returns all task types.
func (h *TaskTypeHandler) List(c *fiber.Ctx) error {
	taskTypes, err := h.store.GetTaskTypes(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task types"})
	}
	return c.Status(200).JSON(taskTypes)
}

// Get returns one task type by slug.
func (h *TaskTypeHandler) Get(c *fiber.Ctx) error {
	taskType, err := h.store.GetTaskType(c.Context(), c.Params("slug"))
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task type not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task type"})
	}

	return c.Status(200).JSON(taskType)
}

// Create validates, sanitizes and inserts a new task type.
func (h *TaskTypeHandler) Create(c *fiber.Ctx) error {
	payload := new(taskTypePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name, payload.Description),
		},
		Validate: []validation.Step{
			validation.RequiredString("name", payload.Name, 64),
			validation.OptionalString("description", payload.Description, 1000),
			h.rules.TaskTypeSlugAvailable("name", payload.Name),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name, payload.Description),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	description := ""
	if payload.Description != nil {
		description = *payload.Description
	}

	taskType, err := h.store.InsertTaskType(c.Context(), *payload.Name, description)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not create task type"})
	}

	return c.Status(201).JSON(taskType)
}

// Update applies a partial update to a task type; a new name re-derives
// the slug.
func (h *TaskTypeHandler) Update(c *fiber.Ctx) error {
	taskType, err := h.store.GetTaskType(c.Context(), c.Params("slug"))
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task type not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task type"})
	}

	payload := new(taskTypePayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name, payload.Description),
		},
		Validate: []validation.Step{
			validation.OptionalString("name", payload.Name, 64),
			validation.OptionalString("description", payload.Description, 1000),
			validation.AtLeastOneOf([]string{"name", "description"}, payload.Name, payload.Description),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name, payload.Description),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	fields := []string{"name", "slug", "description"}
	values := make([]any, len(fields))
	if payload.Name != nil {
		values[0] = *payload.Name
		values[1] = slug.Make(*payload.Name)
	}
	if payload.Description != nil {
		values[2] = *payload.Description
	}

	updated, err := h.store.UpdateTaskType(c.Context(), taskType.ID, fields, values)
	if errors.Is(err, database.ErrNoFields) {
		return c.Status(400).JSON(fiber.Map{"error": "no fields to update"})
	}
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task type not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not update task type"})
	}

	return c.Status(200).JSON(updated)
}

// Delete deletes a task type by slug.
func (h *TaskTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteTaskType(c.Context(), c.Params("slug")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete task type"})
	}

	return c.Status(200).JSON(true)
}
