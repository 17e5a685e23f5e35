package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/response"
	profileuc "launchboard/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

const signatureHeader = "X-Webhook-Signature"

// WebhookHandler receives identity-provider user events and mirrors them
// into the profile store. Requests are authenticated by an HMAC-SHA256
// signature over the raw body, not by a session.
type WebhookHandler struct {
	uc     *profileuc.Service
	secret []byte
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"data"`
}

func NewWebhookHandler(uc *profileuc.Service, secret string) *WebhookHandler {
	return &WebhookHandler{uc: uc, secret: []byte(secret)}
}

func (h *WebhookHandler) IdentityEvent(c fiber.Ctx) error {
	if !h.verifySignature(c) {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid signature", nil)
	}

	var event identityEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad Request", err)
	}

	switch event.Type {
	case "user.created", "user.updated":
		err := h.uc.SyncFromProvider(c.Context(), profileuc.SyncInput{
			ID:          event.Data.ID,
			DisplayName: event.Data.DisplayName,
		})
		if err != nil {
			if errors.Is(err, profileuc.ErrInvalidInput) {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad Request", err)
			}
			return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
		}
	default:
		// Unknown event types are acknowledged so the provider stops
		// retrying them.
	}

	return response.Object(c, fiber.StatusOK, fiber.Map{"received": true})
}

func (h *WebhookHandler) verifySignature(c fiber.Ctx) bool {
	if len(h.secret) == 0 {
		return false
	}

	sig, err := hex.DecodeString(c.Get(signatureHeader))
	if err != nil || len(sig) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write(c.Body())
	return hmac.Equal(sig, mac.Sum(nil))
}
