package models

import "testing"

func TestResolvedDestinationPrefersExtracted(t *testing.T) {
	state := &PipelineState{
		ExtractedRequirements: NewSuccess(map[string]any{
			"requirements": map[string]any{"destination": "Tokyo"},
		}, nil),
		DestinationSuggestions: NewSuccess(map[string]any{
			"suggestions": []map[string]any{{"destination": "Zermatt, Switzerland"}},
		}, nil),
	}
	if got := state.ResolvedDestination(); got != "Tokyo" {
		t.Errorf("ResolvedDestination() = %q, want Tokyo", got)
	}
}

func TestResolvedDestinationVagueFallsBackToSuggestion(t *testing.T) {
	state := &PipelineState{
		ExtractedRequirements: NewSuccess(map[string]any{
			"requirements": map[string]any{"destination": "somewhere snowy"},
		}, nil),
		DestinationSuggestions: NewSuccess(map[string]any{
			"suggestions": []map[string]any{{"destination": "Zermatt, Switzerland"}},
		}, nil),
	}
	if got := state.ResolvedDestination(); got != "Zermatt, Switzerland" {
		t.Errorf("ResolvedDestination() = %q, want the first suggestion", got)
	}
}

func TestResolvedDestinationEmptyWhenNothingResolvable(t *testing.T) {
	state := &PipelineState{
		ExtractedRequirements:  NewSuccess(map[string]any{"requirements": map[string]any{}}, nil),
		DestinationSuggestions: IntegrationFailure("unreachable"),
	}
	if got := state.ResolvedDestination(); got != "" {
		t.Errorf("ResolvedDestination() = %q, want empty", got)
	}
}

func TestIsVagueDestination(t *testing.T) {
	tests := []struct {
		destination string
		want        bool
	}{
		{"Europe", true},
		{"somewhere warm", true},
		{"warm place", true},
		{"a snowy place", true},
		{"skiing", true},
		{"skiing in the alps", true},
		{"islands", true},
		{"the desert", true},
		{"beach destination", true},
		{"South America", true},
		{"anywhere", true},
		{"Malaysia", false},
		{"Oceanside, California", false},
		{"Bangkok, Thailand", false},
		{"Paris", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			if got := IsVagueDestination(tt.destination); got != tt.want {
				t.Errorf("IsVagueDestination(%q) = %v, want %v", tt.destination, got, tt.want)
			}
		})
	}
}

func TestProviderResultNilSafety(t *testing.T) {
	var res *ProviderResult
	if res.Succeeded() {
		t.Error("nil result should not report success")
	}
	if res.Failed() {
		t.Error("nil result should not report failure either")
	}
}
