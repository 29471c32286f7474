package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/services"
)

// SubmitJob handles submitting a job application to the intake queue
func (h *APIHandler) SubmitJob(c *fiber.Ctx) error {
	var params QueueSubmitJobParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	item, err := h.queue.Submit(c.Context(), services.SubmitJobParams{
		URL:          params.URL,
		CompanyName:  params.CompanyName,
		SubmitterID:  params.SubmitterID,
		Source:       params.Source,
		GenerationID: params.GenerationID,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueSubmitFailed})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// SubmitScrape handles submitting a scrape request to the intake queue.
// One active scrape is allowed per submitter.
func (h *APIHandler) SubmitScrape(c *fiber.Ctx) error {
	var params QueueSubmitScrapeParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	if h.queue.HasPendingScrape(c.Context(), params.SubmitterID) {
		return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{Error: ErrMsgScrapeRateLimited})
	}

	item, err := h.queue.SubmitScrape(c.Context(), services.SubmitScrapeParams{
		SubmitterID: params.SubmitterID,
		Config:      params.Config,
		Source:      params.Source,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueSubmitFailed})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListQueueItems handles listing queue items with pagination and an optional
// status filter
func (h *APIHandler) ListQueueItems(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	opts := getPaginationOptions(page)

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := models.ParseQueueItemStatus(statusStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		opts.Status = &status
	}

	items, err := h.queue.List(c.Context(), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueListFailed})
	}

	return c.JSON(ListResponse[models.QueueItem]{
		Rows: items,
		Pagination: PaginationResponse{
			Total:  len(items),
			Page:   page,
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// GetQueueItem handles retrieving a queue item by ID
func (h *APIHandler) GetQueueItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidID})
	}

	item, err := h.queue.Get(c.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgQueueItemNotFound})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueListFailed})
	}

	return c.JSON(item)
}

// OperationResponse is the shape of retry and delete responses
type OperationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RetryQueueItem handles resetting a failed queue item back to pending
func (h *APIHandler) RetryQueueItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidID})
	}

	ok, err := h.queue.Retry(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueRetryFailed})
	}

	resp := OperationResponse{Success: ok}
	if !ok {
		resp.Message = h.retryFailureReason(c, uint(id))
	}
	return c.JSON(resp)
}

// retryFailureReason explains why a retry was a no-op
func (h *APIHandler) retryFailureReason(c *fiber.Ctx, id uint) string {
	item, err := h.queue.Get(c.Context(), id)
	if err != nil {
		return "item not found"
	}
	return "item is in status " + item.Status.String() + ", not failed"
}

// DeleteQueueItem handles permanently deleting a queue item
func (h *APIHandler) DeleteQueueItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidID})
	}

	ok, err := h.queue.Delete(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueDeleteFailed})
	}

	resp := OperationResponse{Success: ok}
	if !ok {
		resp.Message = "item not found"
	}
	return c.JSON(resp)
}

// GetQueueStats handles aggregating queue item counts per status
func (h *APIHandler) GetQueueStats(c *fiber.Ctx) error {
	stats, err := h.queue.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgQueueStatsFailed})
	}
	return c.JSON(stats)
}

// CheckSubmission handles the caller-invoked pre-submission probe: stop-list
// filter, duplicate check and existing-generation lookup
func (h *APIHandler) CheckSubmission(c *fiber.Ctx) error {
	params := QueueCheckParams{
		URL:         c.Query("url"),
		CompanyName: c.Query("company_name"),
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(h.queue.CheckSubmission(c.Context(), params.URL, params.CompanyName))
}
