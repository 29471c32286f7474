package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

func TestConfigService_SettingsDefaults(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	// No row stored yet; reads yield the defaults
	settings := ts.ConfigService.Settings(ts.ctx)
	assert.Equal(t, models.DefaultMaxRetries, settings.MaxRetries)
	assert.Equal(t, models.DefaultRetryDelaySeconds, settings.RetryDelaySeconds)
	assert.Equal(t, models.DefaultProcessingTimeoutSeconds, settings.ProcessingTimeoutSeconds)
}

func TestConfigService_SettingsFailOpenToDefaults(t *testing.T) {
	ts := NewTestSetup(t)
	ts.CleanUp()

	settings := ts.ConfigService.Settings(ts.ctx)
	assert.Equal(t, models.DefaultMaxRetries, settings.MaxRetries)
}

func TestConfigService_StopListDefaultsToEmpty(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	list := ts.ConfigService.StopList(ts.ctx)
	require.NotNil(t, list)
	assert.True(t, list.IsEmpty())
}

func TestConfigService_UpdateStopList_MergesFields(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	_, err := ts.ConfigService.UpdateStopList(ts.ctx, StopListUpdate{
		ExcludedCompanies: &[]string{"Initech"},
		ExcludedDomains:   &[]string{"spam.example"},
	}, "admin")
	require.NoError(t, err)

	// A later partial update leaves the other fields untouched
	list, err := ts.ConfigService.UpdateStopList(ts.ctx, StopListUpdate{
		ExcludedKeywords: &[]string{"unpaid"},
	}, "reviewer")
	require.NoError(t, err)

	assert.Equal(t, []string{"Initech"}, list.ExcludedCompanies)
	assert.Equal(t, []string{"spam.example"}, list.ExcludedDomains)
	assert.Equal(t, []string{"unpaid"}, list.ExcludedKeywords)
	assert.Equal(t, "reviewer", list.UpdatedBy)

	reloaded := ts.ConfigService.StopList(ts.ctx)
	assert.Equal(t, []string{"Initech"}, reloaded.ExcludedCompanies)
}

func TestConfigService_UpdateSettings(t *testing.T) {
	ts := NewTestSetup(t)
	defer ts.CleanUp()

	maxRetries := 5
	settings, err := ts.ConfigService.UpdateSettings(ts.ctx, QueueSettingsUpdate{
		MaxRetries: &maxRetries,
	})
	require.NoError(t, err)

	// Unset fields keep their defaults
	assert.Equal(t, 5, settings.MaxRetries)
	assert.Equal(t, models.DefaultRetryDelaySeconds, settings.RetryDelaySeconds)

	// Invalid updates are rejected and do not persist
	badTimeout := 0
	_, err = ts.ConfigService.UpdateSettings(ts.ctx, QueueSettingsUpdate{
		ProcessingTimeoutSeconds: &badTimeout,
	})
	assert.Error(t, err)

	reloaded := ts.ConfigService.Settings(ts.ctx)
	assert.Equal(t, 5, reloaded.MaxRetries)
	assert.Equal(t, models.DefaultProcessingTimeoutSeconds, reloaded.ProcessingTimeoutSeconds)

	// New submissions pick up the stored retry budget
	item, err := ts.QueueService.Submit(ts.ctx, SubmitJobParams{
		URL:         "https://example.com/jobs/1",
		CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, item.MaxRetries)
}
