package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
	"github.com/vefforritun/verkefni-api/validation"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler serves the admin /users routes.
type UserHandler struct {
	store Store
	rules *validation.Rules
}

func NewUserHandler(store Store) *UserHandler {
	return &UserHandler{store: store, rules: validation.NewRules(store)}
}

type userPayload struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Admin    bool    `json:"admin"`
}

// List returns all users; passwords never serialize.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.store.GetUsers(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not get users"})
	}
	return c.Status(200).JSON(users)
}

// Create validates and inserts a new user with a hashed password.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	payload := new(userPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	pipeline := validation.Pipeline{
		Sanitize: []validation.Step{
			validation.StripMarkup(payload.Name, payload.Username),
		},
		Validate: []validation.Step{
			validation.RequiredString("name", payload.Name, 64),
			validation.RequiredString("username", payload.Username, 64),
			validation.RequiredString("password", payload.Password, 256),
			h.rules.UsernameAvailable("username", payload.Username),
		},
		Finalize: []validation.Step{
			validation.TrimEscape(payload.Name, payload.Username),
		},
	}

	if failures := pipeline.Run(c.Context()); len(failures) > 0 {
		return c.Status(validation.StatusFor(failures)).JSON(fiber.Map{"errors": failures})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.Logger.Errorf("could not hash password: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "could not create user"})
	}

	user, err := h.store.InsertUser(c.Context(), models.NewUser{
		Name:     *payload.Name,
		Username: *payload.Username,
		Password: string(hashedPassword),
		Admin:    payload.Admin,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not create user"})
	}

	return c.Status(201).JSON(user)
}

// Delete deletes a user by id.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete user"})
	}

	if err := h.store.DeleteUser(c.Context(), id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "could not delete user"})
	}

	return c.SendStatus(204)
}
