package handler

import (
	"errors"

	"launchboard/internal/delivery/http/dto"
	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/response"
	"launchboard/internal/domain/profile"
	profileuc "launchboard/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc *profileuc.Service
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	Company     *string `json:"company"`
}

func NewProfileHandler(uc *profileuc.Service) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return profileError(err)
	}
	return response.Object(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) UpdateOwn(c fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if req.DisplayName == nil && req.Role == nil && req.Location == nil && req.Company == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil)
	}

	ident := middleware.IdentityFromCtx(c)
	p, err := h.uc.UpdateOwn(c.Context(), ident, profileuc.UpdateInput{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Location:    req.Location,
		Company:     req.Company,
	})
	if err != nil {
		return profileError(err)
	}
	return response.Object(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func profileError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, profileuc.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, profileuc.ErrInvalidID):
		return middleware.NewAppError(fiber.StatusBadRequest, "User ID is required", err)
	case errors.Is(err, profileuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	case errors.Is(err, profile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
}
