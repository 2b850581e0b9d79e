// Package capability defines the uniform contract every external
// collaborator (requirement extraction, search, compliance checks, ...)
// implements toward the pipeline engine.
package capability

import (
	"context"

	"tripflow/models"
)

// Provider is the single-method contract for one capability concern.
// Implementations are responsible for their own degradation (synthetic data
// when an upstream integration is unreachable) so the engine needs no domain
// knowledge of why a call failed. A returned error is treated by the engine
// exactly like an integration failure of that phase.
type Provider interface {
	// Name identifies the provider in logs and metadata.
	Name() string
	// Execute runs the capability against a structured input map.
	Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error)
}
