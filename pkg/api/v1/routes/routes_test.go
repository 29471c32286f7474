package routes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "/health", HealthCheckURL())
	assert.Equal(t, "/api/v1/queue", QueueSubmitURL())
	assert.Equal(t, "/api/v1/queue/scrape", QueueScrapeURL())
	assert.Equal(t, "/api/v1/queue/stats", QueueStatsURL())
	assert.Equal(t, "/api/v1/queue/7", QueueItemURL("7"))
	assert.Equal(t, "/api/v1/queue/7/retry", QueueRetryURL("7"))
	assert.Equal(t, "/api/v1/generations/req-1", GenerationURL("req-1"))
	assert.Equal(t, "/api/v1/generations/req-1/execute", GenerationExecuteURL("req-1"))
	assert.Equal(t, "/api/v1/config/stop-list", StopListURL())
	assert.Equal(t, "/api/v1/config/settings", QueueSettingsURL())
}

func TestBuildURL_QueryParams(t *testing.T) {
	query := url.Values{}
	query.Set("status", "failed")
	query.Set("page", "2")

	built := QueueItemsURL(query)
	assert.Equal(t, "/api/v1/queue?page=2&status=failed", built)
}

func TestBuildURL_UnknownRoute(t *testing.T) {
	assert.Empty(t, BuildURL("NoSuchRoute", nil, nil))
}
