package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StartGenerationResponse is the shape of the start-generation response
type StartGenerationResponse struct {
	RequestID string   `json:"request_id"`
	NextStep  string   `json:"next_step"`
	Steps     []string `json:"steps"`
}

// StartGeneration handles creating a generation request with its step list
// pending. Execution is driven separately, one step per call.
func (h *APIHandler) StartGeneration(c *fiber.Ctx) error {
	var params GenerationStartParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	req, err := h.generation.Start(c.Context(), params.toServiceParams())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgGenerationStartFailed})
	}

	names := make([]string, len(req.Steps))
	for i, step := range req.Steps {
		names[i] = step.Name
	}

	resp := StartGenerationResponse{RequestID: req.RequestID, Steps: names}
	if next := req.Steps.NextPending(); next >= 0 {
		resp.NextStep = req.Steps[next].Name
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ExecuteStep handles advancing a generation request by exactly one step.
// A step failure is a recorded outcome, not a transport error, so it still
// responds 200 with the failed state.
func (h *APIHandler) ExecuteStep(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidID})
	}

	exec, err := h.generation.ExecuteNextStep(c.Context(), requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgGenerationNotFound})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgGenerationStepFailed})
	}

	return c.JSON(exec)
}

// GetGeneration handles retrieving a generation request by its request ID
func (h *APIHandler) GetGeneration(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidID})
	}

	req, err := h.generation.Get(c.Context(), requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgGenerationNotFound})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgGenerationNotFound})
	}

	return c.JSON(req)
}
