// Package client provides the API client for interacting with the pipeline API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
	"github.com/Jdubz/resume-pipeline/internal/services"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
	"github.com/Jdubz/resume-pipeline/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Queue Endpoints
	GetQueueItems(ctx context.Context, opts *models.ListOptions) ([]models.QueueItem, error)
	GetQueueItem(ctx context.Context, id uint) (models.QueueItem, error)
	GetQueueStats(ctx context.Context) (services.QueueStats, error)
	CheckSubmission(ctx context.Context, jobURL, companyName string) (services.SubmissionCheck, error)
	SubmitJob(ctx context.Context, params handlers.QueueSubmitJobParams) (models.QueueItem, error)
	SubmitScrape(ctx context.Context, params handlers.QueueSubmitScrapeParams) (models.QueueItem, error)
	RetryQueueItem(ctx context.Context, id uint) (handlers.OperationResponse, error)
	DeleteQueueItem(ctx context.Context, id uint) (handlers.OperationResponse, error)

	// Generation Endpoints
	StartGeneration(ctx context.Context, params handlers.GenerationStartParams) (handlers.StartGenerationResponse, error)
	ExecuteStep(ctx context.Context, requestID string) (services.StepExecution, error)
	GetGeneration(ctx context.Context, requestID string) (models.GenerationRequest, error)

	// Config Endpoints
	GetStopList(ctx context.Context) (models.StopList, error)
	UpdateStopList(ctx context.Context, update services.StopListUpdate) (models.StopList, error)
	GetQueueSettings(ctx context.Context) (models.QueueSettings, error)
	UpdateQueueSettings(ctx context.Context, update services.QueueSettingsUpdate) (models.QueueSettings, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	_, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	// Set common headers
	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		// Prefer the server's error message when the body decodes
		var errResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return &fiber.Error{
				Code:    statusCode,
				Message: errResp.Error,
			}
		}
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response)
	return response, err
}

// GetQueueItems retrieves queue items with the given list options
func (c *APIClient) GetQueueItems(ctx context.Context, opts *models.ListOptions) ([]models.QueueItem, error) {
	queryParams := url.Values{}
	if opts != nil {
		if opts.Limit > 0 {
			page := (opts.Offset / opts.Limit) + 1
			queryParams.Set("page", strconv.Itoa(page))
		}
		if opts.Status != nil {
			queryParams.Set("status", opts.Status.String())
		}
	}

	var response handlers.ListResponse[models.QueueItem]
	err := c.executeRequest(ctx, http.MethodGet, routes.QueueItemsURL(queryParams), nil, &response)
	return response.Rows, err
}

// GetQueueItem retrieves a single queue item by ID
func (c *APIClient) GetQueueItem(ctx context.Context, id uint) (models.QueueItem, error) {
	var response models.QueueItem
	endpoint := routes.QueueItemURL(strconv.FormatUint(uint64(id), 10))
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response, err
}

// GetQueueStats retrieves the per-status queue item counts
func (c *APIClient) GetQueueStats(ctx context.Context) (services.QueueStats, error) {
	var response services.QueueStats
	err := c.executeRequest(ctx, http.MethodGet, routes.QueueStatsURL(), nil, &response)
	return response, err
}

// CheckSubmission runs the pre-submission probe for the given job URL
func (c *APIClient) CheckSubmission(ctx context.Context, jobURL, companyName string) (services.SubmissionCheck, error) {
	queryParams := url.Values{}
	queryParams.Set("url", jobURL)
	if companyName != "" {
		queryParams.Set("company_name", companyName)
	}

	var response services.SubmissionCheck
	err := c.executeRequest(ctx, http.MethodGet, routes.QueueCheckURL(queryParams), nil, &response)
	return response, err
}

// SubmitJob submits a job application to the intake queue
func (c *APIClient) SubmitJob(ctx context.Context, params handlers.QueueSubmitJobParams) (models.QueueItem, error) {
	var response models.QueueItem
	err := c.executeRequest(ctx, http.MethodPost, routes.QueueSubmitURL(), params, &response)
	return response, err
}

// SubmitScrape submits a scrape request to the intake queue
func (c *APIClient) SubmitScrape(ctx context.Context, params handlers.QueueSubmitScrapeParams) (models.QueueItem, error) {
	var response models.QueueItem
	err := c.executeRequest(ctx, http.MethodPost, routes.QueueScrapeURL(), params, &response)
	return response, err
}

// RetryQueueItem resets a failed queue item back to pending
func (c *APIClient) RetryQueueItem(ctx context.Context, id uint) (handlers.OperationResponse, error) {
	var response handlers.OperationResponse
	endpoint := routes.QueueRetryURL(strconv.FormatUint(uint64(id), 10))
	err := c.executeRequest(ctx, http.MethodPost, endpoint, nil, &response)
	return response, err
}

// DeleteQueueItem permanently deletes a queue item
func (c *APIClient) DeleteQueueItem(ctx context.Context, id uint) (handlers.OperationResponse, error) {
	var response handlers.OperationResponse
	endpoint := routes.QueueDeleteURL(strconv.FormatUint(uint64(id), 10))
	err := c.executeRequest(ctx, http.MethodDelete, endpoint, nil, &response)
	return response, err
}

// StartGeneration creates a generation request with its step list pending
func (c *APIClient) StartGeneration(ctx context.Context, params handlers.GenerationStartParams) (handlers.StartGenerationResponse, error) {
	var response handlers.StartGenerationResponse
	err := c.executeRequest(ctx, http.MethodPost, routes.GenerationStartURL(), params, &response)
	return response, err
}

// ExecuteStep advances a generation request by exactly one step
func (c *APIClient) ExecuteStep(ctx context.Context, requestID string) (services.StepExecution, error) {
	var response services.StepExecution
	err := c.executeRequest(ctx, http.MethodPost, routes.GenerationExecuteURL(requestID), nil, &response)
	return response, err
}

// GetGeneration retrieves a generation request by its request ID
func (c *APIClient) GetGeneration(ctx context.Context, requestID string) (models.GenerationRequest, error) {
	var response models.GenerationRequest
	err := c.executeRequest(ctx, http.MethodGet, routes.GenerationURL(requestID), nil, &response)
	return response, err
}

// GetStopList retrieves the current stop list
func (c *APIClient) GetStopList(ctx context.Context) (models.StopList, error) {
	var response models.StopList
	err := c.executeRequest(ctx, http.MethodGet, routes.StopListURL(), nil, &response)
	return response, err
}

// UpdateStopList applies a partial stop-list update
func (c *APIClient) UpdateStopList(ctx context.Context, update services.StopListUpdate) (models.StopList, error) {
	var response models.StopList
	err := c.executeRequest(ctx, http.MethodPut, routes.StopListURL(), update, &response)
	return response, err
}

// GetQueueSettings retrieves the current queue settings
func (c *APIClient) GetQueueSettings(ctx context.Context) (models.QueueSettings, error) {
	var response models.QueueSettings
	err := c.executeRequest(ctx, http.MethodGet, routes.QueueSettingsURL(), nil, &response)
	return response, err
}

// UpdateQueueSettings applies a partial queue-settings update
func (c *APIClient) UpdateQueueSettings(ctx context.Context, update services.QueueSettingsUpdate) (models.QueueSettings, error) {
	var response models.QueueSettings
	err := c.executeRequest(ctx, http.MethodPut, routes.QueueSettingsURL(), update, &response)
	return response, err
}
