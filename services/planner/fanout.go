package planner

import (
	"context"
	"sync"

	"tripflow/models"
	"tripflow/services/capability"
)

// branch is one concurrently executed provider call.
type branch struct {
	phase    Phase
	provider capability.Provider
	input    map[string]any
}

// fanOut runs every branch concurrently and waits for all of them regardless
// of individual failures. Each branch gets its own result slot keyed by
// phase; a panicking or erroring branch yields an integration failure in its
// slot, never a missing one. The returned map is only read after the join,
// which is the pipeline's sole synchronization barrier.
func fanOut(ctx context.Context, sessionID string, branches []branch) map[Phase]*models.ProviderResult {
	results := make([]*models.ProviderResult, len(branches))

	var wg sync.WaitGroup
	for i, b := range branches {
		wg.Add(1)
		go func(i int, b branch) {
			defer wg.Done()
			results[i] = invoke(ctx, b.provider, b.input, sessionID)
		}(i, b)
	}
	wg.Wait()

	out := make(map[Phase]*models.ProviderResult, len(branches))
	for i, b := range branches {
		out[b.phase] = results[i]
	}
	return out
}

// invoke calls a provider and converts every failure mode (error return,
// panic) into a failed result so the pipeline degrades instead of aborting.
func invoke(ctx context.Context, p capability.Provider, input map[string]any, sessionID string) (res *models.ProviderResult) {
	defer func() {
		if r := recover(); r != nil {
			res = models.IntegrationFailure("provider panicked: " + p.Name())
		}
	}()

	res, err := p.Execute(ctx, input, sessionID)
	if err != nil {
		return models.IntegrationFailure(err.Error())
	}
	if res == nil {
		return models.IntegrationFailure("provider returned no result: " + p.Name())
	}
	return res
}
