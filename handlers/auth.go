package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
	"github.com/vefforritun/verkefni-api/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves /login.
type AuthHandler struct {
	store    Store
	secret   string
	lifetime time.Duration
}

func NewAuthHandler(store Store, secret string, lifetime time.Duration) *AuthHandler {
	return &AuthHandler{store: store, secret: secret, lifetime: lifetime}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a token. A missing user and a
// wrong password are indistinguishable to the client.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	payload := new(loginPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid json"})
	}

	user, err := h.store.GetUserByUsername(c.Context(), payload.Username)
	if err != nil {
		logging.Logger.Warnf("login failed for %q: %v", payload.Username, err)
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		logging.Logger.Warnf("login failed for %q: %v", payload.Username, err)
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := h.generateToken(user)
	if err != nil {
		logging.Logger.Errorf("could not sign token for %q: %v", payload.Username, err)
		return c.Status(500).JSON(fiber.Map{"error": "could not create token"})
	}

	return c.Status(200).JSON(fiber.Map{"token": token})
}

// generateToken mints an HS256 token carrying the user id and admin
// flag.
func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	jti, err := utils.GenerateRandomID()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"admin":   user.Admin,
		"jti":     jti,
		"exp":     time.Now().Add(h.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
