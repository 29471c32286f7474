package handlers

import (
	"fmt"
	"strings"

	"github.com/Jdubz/resume-pipeline/internal/services"
)

// GenerationStartParams defines the parameters for starting a generation
type GenerationStartParams struct {
	Kind        string                         `json:"kind"`
	Provider    string                         `json:"provider,omitempty"`
	Job         services.GenerationJob         `json:"job"`
	Preferences services.GenerationPreferences `json:"preferences,omitempty"`
}

// Validate validates the parameters for starting a generation
func (p GenerationStartParams) Validate() error {
	if p.Kind == "" {
		return fmt.Errorf("%s", strings.ToLower(ErrMsgGenerationKindRequired))
	}
	if p.Job.Role == "" {
		return fmt.Errorf("job role is required")
	}
	if p.Job.Company == "" {
		return fmt.Errorf("job company is required")
	}
	return nil
}

// toServiceParams converts the handler params to the service-level params
func (p GenerationStartParams) toServiceParams() services.StartGenerationParams {
	return services.StartGenerationParams{
		Kind:        p.Kind,
		Provider:    p.Provider,
		Job:         p.Job,
		Preferences: p.Preferences,
	}
}
