package response

import "github.com/gofiber/fiber/v3"

// The wire conventions predate this service and are kept for client
// compatibility: list endpoints wrap in {"data": [...]}, single-resource
// endpoints return the bare object, and every failure is
// {"error": "<message>"}.

type ListEnvelope struct {
	Data any `json:"data"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

const (
	MessageBadRequest          = "Bad Request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not Found"
	MessageConflict            = "Conflict"
	MessageInternalServerError = "Internal Server Error"
)

// List writes a 200 with the data envelope. A nil slice is the caller's
// bug; handlers pass the usecase result, which is never nil on success.
func List(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(ListEnvelope{Data: data})
}

// Object writes a single resource with no envelope.
func Object(c fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c fiber.Ctx, status int, message string) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(status)
	}
	// Nothing beyond the mapped message ever reaches the client for 5xx.
	if status >= 500 {
		message = MessageInternalServerError
	}
	return c.Status(status).JSON(ErrorBody{Error: message})
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageBadRequest
	}
}
