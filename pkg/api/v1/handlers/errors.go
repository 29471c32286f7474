// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInvalidID      = "Invalid id"
)

// Queue error messages
const (
	ErrMsgQueueURLRequired       = "Url is required"
	ErrMsgQueueCompanyRequired   = "Company name is required"
	ErrMsgQueueSubmitterRequired = "Submitter id is required"
	ErrMsgQueueItemNotFound      = "Queue item not found"
	ErrMsgQueueSubmitFailed      = "Failed to submit queue item"
	ErrMsgQueueListFailed        = "Failed to list queue items"
	ErrMsgQueueRetryFailed       = "Failed to retry queue item"
	ErrMsgQueueDeleteFailed      = "Failed to delete queue item"
	ErrMsgQueueStatsFailed       = "Failed to aggregate queue stats"
	ErrMsgScrapeRateLimited      = "Submitter already has an active scrape"
)

// Generation error messages
const (
	ErrMsgGenerationKindRequired = "Generation kind is required"
	ErrMsgGenerationNotFound     = "Generation request not found"
	ErrMsgGenerationStartFailed  = "Failed to start generation"
	ErrMsgGenerationStepFailed   = "Generation failed, please try again"
)

// Config error messages
const (
	ErrMsgStopListUpdateFailed = "Failed to update stop list"
	ErrMsgSettingsUpdateFailed = "Failed to update queue settings"
)
