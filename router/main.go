package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vefforritun/verkefni-api/handlers"
	"github.com/vefforritun/verkefni-api/middleware"
)

// SetupRoutes mounts every route on the app. Reads are public, writes
// need a token and user management needs the admin flag.
func SetupRoutes(app *fiber.App, store handlers.Store, secret string, tokenLifetime time.Duration) {
	taskHandler := handlers.NewTaskHandler(store)
	taskTypeHandler := handlers.NewTaskTypeHandler(store)
	taskTagHandler := handlers.NewTaskTagHandler(store)
	userHandler := handlers.NewUserHandler(store)
	authHandler := handlers.NewAuthHandler(store, secret, tokenLifetime)

	authenticated := middleware.RequireAuthentication(secret)
	admin := middleware.RequireAdmin(secret)

	app.Get("/", handlers.HandleIndex)
	app.Post("/login", authHandler.Login)

	app.Get("/verkefni", taskHandler.List)
	app.Post("/verkefni", authenticated, taskHandler.Create)
	app.Get("/verkefni/:id", taskHandler.Get)
	app.Patch("/verkefni/:id", authenticated, taskHandler.Update)
	app.Delete("/verkefni/:id", authenticated, taskHandler.Delete)

	app.Get("/flokkar", taskTypeHandler.List)
	app.Post("/flokkar", authenticated, taskTypeHandler.Create)
	app.Get("/flokkar/:slug", taskTypeHandler.Get)
	app.Patch("/flokkar/:slug", authenticated, taskTypeHandler.Update)
	app.Delete("/flokkar/:slug", authenticated, taskTypeHandler.Delete)

	app.Get("/merki", taskTagHandler.List)
	app.Post("/merki", authenticated, taskTagHandler.Create)
	app.Get("/merki/:slug", taskTagHandler.Get)
	app.Patch("/merki/:slug", authenticated, taskTagHandler.Update)
	app.Delete("/merki/:slug", authenticated, taskTagHandler.Delete)

	app.Get("/users", admin, userHandler.List)
	app.Post("/users", admin, userHandler.Create)
	app.Delete("/users/:id", admin, userHandler.Delete)
}
