package handlers

import "github.com/gofiber/fiber/v2"

// HandleIndex lists the available endpoints.
func HandleIndex(c *fiber.Ctx) error {
	return c.Status(200).JSON([]fiber.Map{
		{"href": "/verkefni", "methods": []string{"GET", "POST"}},
		{"href": "/verkefni/:id", "methods": []string{"GET", "PATCH", "DELETE"}},
		{"href": "/flokkar", "methods": []string{"GET", "POST"}},
		{"href": "/flokkar/:slug", "methods": []string{"GET", "PATCH", "DELETE"}},
		{"href": "/merki", "methods": []string{"GET", "POST"}},
		{"href": "/merki/:slug", "methods": []string{"GET", "PATCH", "DELETE"}},
		{"href": "/users", "methods": []string{"GET", "POST"}},
		{"href": "/users/:id", "methods": []string{"DELETE"}},
		{"href": "/login", "methods": []string{"POST"}},
	})
}
