package handler

import (
	"encoding/json"

	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
)

// PitchHandler serves the pitch copilot. The copilot is a placeholder:
// it returns the same template regardless of input, and only rejects
// bodies that are not valid JSON.
type PitchHandler struct{}

type pitchRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type pitchTemplate struct {
	Hook     string `json:"hook"`
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
	Market   string `json:"market"`
	Ask      string `json:"ask"`
}

type pitchResponse struct {
	Pitch pitchTemplate `json:"pitch"`
	Notes string        `json:"notes"`
}

func NewPitchHandler() *PitchHandler {
	return &PitchHandler{}
}

func (h *PitchHandler) Generate(c fiber.Ctx) error {
	var req pitchRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad Request", err)
	}

	res := pitchResponse{
		Pitch: pitchTemplate{
			Hook:     "One sentence that makes the listener lean in.",
			Problem:  "Who hurts today, how often, and what it costs them.",
			Solution: "What you built and why it beats the workaround they use now.",
			Market:   "How many people have this problem and how you reach them.",
			Ask:      "What you need next: intros, feedback, or capital.",
		},
		Notes: "Starter template. Replace each section with specifics from your idea before pitching.",
	}
	return response.Object(c, fiber.StatusOK, res)
}
