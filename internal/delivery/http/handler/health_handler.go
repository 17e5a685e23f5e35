package handler

import (
	"launchboard/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Object(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
