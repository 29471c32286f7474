package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/Jdubz/resume-pipeline/internal/services"
)

// GetStopList handles retrieving the current stop list. Missing rows read as
// an empty list.
func (h *APIHandler) GetStopList(c *fiber.Ctx) error {
	return c.JSON(h.config.StopList(c.Context()))
}

// UpdateStopList handles a partial stop-list update. The editor identity is
// taken from the X-Editor header when present.
func (h *APIHandler) UpdateStopList(c *fiber.Ctx) error {
	var update services.StopListUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}

	list, err := h.config.UpdateStopList(c.Context(), update, c.Get("X-Editor"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgStopListUpdateFailed})
	}
	return c.JSON(list)
}

// GetQueueSettings handles retrieving the current queue settings. Missing
// rows read as the defaults.
func (h *APIHandler) GetQueueSettings(c *fiber.Ctx) error {
	return c.JSON(h.config.Settings(c.Context()))
}

// UpdateQueueSettings handles a partial queue-settings update
func (h *APIHandler) UpdateQueueSettings(c *fiber.Ctx) error {
	var update services.QueueSettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}

	settings, err := h.config.UpdateSettings(c.Context(), update)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgSettingsUpdateFailed})
	}
	return c.JSON(settings)
}
