package handler

import (
	"errors"
	"strings"

	"launchboard/internal/delivery/http/dto"
	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/response"
	"launchboard/internal/domain/idea"
	ideauc "launchboard/internal/usecase/idea"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type IdeaHandler struct {
	uc *ideauc.Service
}

type createIdeaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateIdeaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func NewIdeaHandler(uc *ideauc.Service) *IdeaHandler {
	return &IdeaHandler{uc: uc}
}

func (h *IdeaHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListActive(c.Context())
	if err != nil {
		return ideaError(err)
	}
	return response.List(c, dto.NewIdeaList(items))
}

func (h *IdeaHandler) Get(c fiber.Ctx) error {
	id, err := ideaID(c)
	if err != nil {
		return err
	}

	i, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return ideaError(err)
	}
	return response.Object(c, fiber.StatusOK, dto.NewIdeaResponse(i))
}

func (h *IdeaHandler) Create(c fiber.Ctx) error {
	var req createIdeaRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	ident := middleware.IdentityFromCtx(c)
	i, err := h.uc.Create(c.Context(), ident, ideauc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return ideaError(err)
	}
	return response.Object(c, fiber.StatusCreated, dto.NewIdeaResponse(i))
}

func (h *IdeaHandler) Update(c fiber.Ctx) error {
	id, err := ideaID(c)
	if err != nil {
		return err
	}

	var req updateIdeaRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if req.Title == nil && req.Description == nil && req.Status == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil)
	}

	ident := middleware.IdentityFromCtx(c)
	i, err := h.uc.Update(c.Context(), ident, id, ideauc.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return ideaError(err)
	}
	return response.Object(c, fiber.StatusOK, dto.NewIdeaResponse(i))
}

func (h *IdeaHandler) Delete(c fiber.Ctx) error {
	id, err := ideaID(c)
	if err != nil {
		return err
	}

	ident := middleware.IdentityFromCtx(c)
	if err := h.uc.Delete(c.Context(), ident, id); err != nil {
		return ideaError(err)
	}
	return response.Object(c, fiber.StatusOK, fiber.Map{"success": true})
}

func ideaID(c fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("id"))
	if raw == "" {
		return uuid.UUID{}, middleware.NewAppError(fiber.StatusBadRequest, "Idea ID is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid idea ID", err)
	}
	return id, nil
}

func ideaError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, ideauc.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, ideauc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", err)
	case errors.Is(err, ideauc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	case errors.Is(err, idea.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Idea not found", err)
	case errors.Is(err, idea.ErrGone):
		return middleware.NewAppError(fiber.StatusConflict, "Idea already deleted", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
}
