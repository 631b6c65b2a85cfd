package server

import (
	"errors"

	"bg3-modsettings/core/logger"
	"bg3-modsettings/core/middleware/auth"
	"bg3-modsettings/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp builds the fiber app with ray ids, request logging and API key auth installed.
// Features are registered on the returned app by the caller.
func NewApp(cfg Config, logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logg),
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(requestLogger(logg))
	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	return app
}

func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	}
}

func errorHandler(logg *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithRayID(logg, c).Error("Unhandled error", zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
