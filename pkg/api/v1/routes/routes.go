// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Jdubz/resume-pipeline/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first (i.e. queue routes before generation routes)
2. For similar scopes, put the endpoints in alphabetical order
3. Order routes in GET, POST, PUT, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last, otherwise fiber will interpret the route slug as that param.
	b. After param considerations, order alphabetically.
4. For clarity, naming should match the action (i.e. GetQueueItem, DeleteQueueItem)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Queue routes
	GetQueueItems   = "GetQueueItems"
	CheckSubmission = "CheckSubmission"
	GetQueueStats   = "GetQueueStats"
	GetQueueItem    = "GetQueueItem"
	SubmitJob       = "SubmitJob"
	SubmitScrape    = "SubmitScrape"
	RetryQueueItem  = "RetryQueueItem"
	DeleteQueueItem = "DeleteQueueItem"

	// Generation routes
	GetGeneration   = "GetGeneration"
	StartGeneration = "StartGeneration"
	ExecuteStep     = "ExecuteStep"

	// Config routes
	GetStopList         = "GetStopList"
	UpdateStopList      = "UpdateStopList"
	GetQueueSettings    = "GetQueueSettings"
	UpdateQueueSettings = "UpdateQueueSettings"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the order they are registered.
// For example, if we register GetQueueItem before GetQueueStats, the /stats slug would get interpreted as an item ID.
func RegisterRoutes(app *fiber.App, api *handlers.APIHandler) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Queue endpoints
	queue := v1.Group("/queue")
	queue.Get("/", api.ListQueueItems).Name(GetQueueItems)
	queue.Get("/check", api.CheckSubmission).Name(CheckSubmission)
	queue.Get("/stats", api.GetQueueStats).Name(GetQueueStats)
	queue.Get("/:id", api.GetQueueItem).Name(GetQueueItem)
	queue.Post("/", api.SubmitJob).Name(SubmitJob)
	queue.Post("/scrape", api.SubmitScrape).Name(SubmitScrape)
	queue.Post("/:id/retry", api.RetryQueueItem).Name(RetryQueueItem)
	queue.Delete("/:id", api.DeleteQueueItem).Name(DeleteQueueItem)

	// Generation endpoints
	generations := v1.Group("/generations")
	generations.Get("/:request_id", api.GetGeneration).Name(GetGeneration)
	generations.Post("/", api.StartGeneration).Name(StartGeneration)
	generations.Post("/:request_id/execute", api.ExecuteStep).Name(ExecuteStep)

	// Config endpoints
	config := v1.Group("/config")
	config.Get("/stop-list", api.GetStopList).Name(GetStopList)
	config.Get("/settings", api.GetQueueSettings).Name(GetQueueSettings)
	config.Put("/stop-list", api.UpdateStopList).Name(UpdateStopList)
	config.Put("/settings", api.UpdateQueueSettings).Name(UpdateQueueSettings)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		// Create a mock app
		app := fiber.New()

		// Register routes with an empty handler set
		RegisterRoutes(app, &handlers.APIHandler{})

		// Extract routes from the app
		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()

	// Initialize cache if needed
	if routeCache == nil {
		routeCacheMu.RUnlock()
		initRouteCache()
		routeCacheMu.RLock()
	}

	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	// Replace parameters in the route
	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, value)
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	// Add query parameters if any
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Health check route helper

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// Queue route helpers

// QueueItemsURL returns the URL for listing queue items
func QueueItemsURL(queryParams url.Values) string {
	return BuildURL(GetQueueItems, nil, queryParams)
}

// QueueCheckURL returns the URL for the pre-submission check
func QueueCheckURL(queryParams url.Values) string {
	return BuildURL(CheckSubmission, nil, queryParams)
}

// QueueStatsURL returns the URL for the queue statistics
func QueueStatsURL() string {
	return BuildURL(GetQueueStats, nil, nil)
}

// QueueItemURL returns the URL for a single queue item
func QueueItemURL(id string) string {
	return BuildURL(GetQueueItem, map[string]string{"id": id}, nil)
}

// QueueSubmitURL returns the URL for submitting a job
func QueueSubmitURL() string {
	return BuildURL(SubmitJob, nil, nil)
}

// QueueScrapeURL returns the URL for submitting a scrape request
func QueueScrapeURL() string {
	return BuildURL(SubmitScrape, nil, nil)
}

// QueueRetryURL returns the URL for retrying a failed queue item
func QueueRetryURL(id string) string {
	return BuildURL(RetryQueueItem, map[string]string{"id": id}, nil)
}

// QueueDeleteURL returns the URL for deleting a queue item
func QueueDeleteURL(id string) string {
	return BuildURL(DeleteQueueItem, map[string]string{"id": id}, nil)
}

// Generation route helpers

// GenerationURL returns the URL for a single generation request
func GenerationURL(requestID string) string {
	return BuildURL(GetGeneration, map[string]string{"request_id": requestID}, nil)
}

// GenerationStartURL returns the URL for starting a generation
func GenerationStartURL() string {
	return BuildURL(StartGeneration, nil, nil)
}

// GenerationExecuteURL returns the URL for executing the next generation step
func GenerationExecuteURL(requestID string) string {
	return BuildURL(ExecuteStep, map[string]string{"request_id": requestID}, nil)
}

// Config route helpers

// StopListURL returns the URL for the stop list
func StopListURL() string {
	return BuildURL(GetStopList, nil, nil)
}

// QueueSettingsURL returns the URL for the queue settings
func QueueSettingsURL() string {
	return BuildURL(GetQueueSettings, nil, nil)
}
