package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vefforritun/verkefni-api/config"
	"github.com/vefforritun/verkefni-api/database"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/router"
)

// errorHandler is the catch-all: anything a handler did not translate
// itself, including panics surfaced by the recover middleware, becomes
// a JSON error response.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	logging.Logger.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// SetupAndRunApp wires config, store, middleware and routes together,
// then listens until the process is told to stop.
func SetupAndRunApp() error {
	err := config.LoadENV()
	if err != nil {
		return err
	}

	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db := database.New(cfg.DatabaseURL)
	if err := db.Open(context.Background()); err != nil {
		return err
	}
	defer db.Close()

	if cfg.SeedTaskTypes != "" {
		names, err := database.ParseTaskTypeNames(cfg.SeedTaskTypes)
		if err != nil {
			return err
		}
		inserted := db.InsertTaskTypes(context.Background(), names)
		logging.Logger.Infof("seeded %d of %d task types", len(inserted), len(names))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, db, cfg.JWTSecret, cfg.TokenLifetime)

	// anything that made it past the route table
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "not found"})
	})

	// stop listening on SIGINT/SIGTERM, then let the deferred close
	// drain the pool
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logging.Logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Logger.Errorf("error shutting down: %v", err)
		}
	}()

	return app.Listen(":" + cfg.Port)
}
