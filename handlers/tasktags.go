package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/vefforritun/verkefni-api/database"
	"github.com/vefforritun/verkefni-api/validation"
)

// TaskTagHandler serves the /merki routes.
type TaskTagHandler struct {
	store Store
	rules *validation.Rules
}

func NewTaskTagHandler(store Store) *TaskTagHandler {
	return &TaskTagHandler{store: store, rules: validation.NewRules(store)}
}

type taskTagPayload struct {
	Name *string `json:"name"`
}

// List returns all task tags.
func (h *TaskTagHandler) List(c *fiber.Ctx) error {
	taskTags, err := h.store.GetTaskTags(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task tags"})
	}
	return c.Status(200).JSON(taskTags)
}

// Get returns one task tag by slug.
func (h *TaskTagHandler) Get(c *fiber.Ctx) error {
	taskTag, err := h.store.GetTaskTag(c.Context(), c.Params("slug"))
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task tag not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task tag"})
	}

	return c.Status(200).JSON(taskTag)
}

// Create validates, sanitizes and inserts a new task tag.
func (h *TaskTagHandler) Create(c *fiber.Ctx) error {
	payload := new(taskTagPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name),
		},
		Validate: []validation.Step{
			validation.RequiredString("name", payload.Name, 64),
			h.rules.TaskTagSlugAvailable("name", payload.Name),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	taskTag, err := h.store.InsertTaskTag(c.Context(), *payload.Name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not create task tag"})
	}

	return c.Status(201).JSON(taskTag)
}

// Update renames a task tag and re-derives its slug.
func (h *TaskTagHandler) Update(c *fiber.Ctx) error {
	taskTag, err := h.store.GetTaskTag(c.Context(), c.Params("slug"))
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task tag not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get task tag"})
	}

	payload := new(taskTagPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name),
		},
		Validate: []validation.Step{
			validation.RequiredString("name", payload.Name, 64),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	fields := []string{"name", "slug"}
	values := []any{*payload.Name, slug.Make(*payload.Name)}

	updated, err := h.store.UpdateTaskTag(c.Context(), taskTag.ID, fields, values)
	if errors.Is(err, database.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "task tag not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not update task tag"})
	}

	return c.Status(200).JSON(updated)
}

// Delete deletes a task tag by slug.
func (h *TaskTagHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteTaskTag(c.Context(), c.Params("slug")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete task tag"})
	}

	return c.Status(200).JSON(true)
}
