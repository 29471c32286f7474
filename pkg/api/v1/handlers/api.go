package handlers

import "github.com/Jdubz/resume-pipeline/internal/services"

// APIHandler is a handler for the API
type APIHandler struct {
	queue      *services.Queue
	generation *services.Generation
	config     *services.Config
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(queue *services.Queue, generation *services.Generation, config *services.Config) *APIHandler {
	return &APIHandler{
		queue:      queue,
		generation: generation,
		config:     config,
	}
}
