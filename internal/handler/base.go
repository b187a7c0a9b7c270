// Package handler defines HTTP request handlers and related utilities.
package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *slog.Logger
}

// Health answers liveness probes.
func Health() fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.SendString("ok")
	}
}
