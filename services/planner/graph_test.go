package planner

import (
	"testing"

	"tripflow/models"
)

func TestNeedsDestinationDiscovery(t *testing.T) {
	tests := []struct {
		name string
		reqs models.TravelRequirements
		want bool
	}{
		{"absent destination", models.TravelRequirements{}, true},
		{"type without destination", models.TravelRequirements{DestinationType: "beach"}, true},
		{"continent", models.TravelRequirements{Destination: "Europe"}, true},
		{"mood descriptor", models.TravelRequirements{Destination: "somewhere warm"}, true},
		{"generic descriptor", models.TravelRequirements{Destination: "ski destination"}, true},
		{"concrete city", models.TravelRequirements{Destination: "Tokyo"}, false},
		{"city with country", models.TravelRequirements{Destination: "Bangkok, Thailand"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsDestinationDiscovery(tt.reqs); got != tt.want {
				t.Errorf("needsDestinationDiscovery(%+v) = %v, want %v", tt.reqs, got, tt.want)
			}
		})
	}
}

func TestRouteAfterProfile(t *testing.T) {
	vague := &models.PipelineState{
		ExtractedRequirements: models.NewSuccess(map[string]any{
			"requirements": map[string]any{"destination": "somewhere snowy"},
		}, nil),
	}
	if got := routeAfterProfile(vague); got != PhaseDiscoverDestinations {
		t.Errorf("vague destination routed to %s, want %s", got, PhaseDiscoverDestinations)
	}
	if !vague.NeedsDestinationDiscovery {
		t.Error("routing through discovery should set the flag")
	}

	concrete := &models.PipelineState{
		ExtractedRequirements: models.NewSuccess(map[string]any{
			"requirements": map[string]any{"destination": "Tokyo"},
		}, nil),
	}
	if got := routeAfterProfile(concrete); got != PhaseSearchEvents {
		t.Errorf("concrete destination routed to %s, want %s", got, PhaseSearchEvents)
	}
}

func TestNeedsEventSearch(t *testing.T) {
	plain := &models.PipelineState{
		ExtractedRequirements: models.NewSuccess(map[string]any{
			"requirements": map[string]any{"destination": "Paris"},
		}, nil),
	}
	if needsEventSearch(plain) {
		t.Error("no event hints should mean no event search")
	}

	named := &models.PipelineState{
		ExtractedRequirements: models.NewSuccess(map[string]any{
			"requirements": map[string]any{"event_name": "Oktoberfest"},
		}, nil),
	}
	if !needsEventSearch(named) {
		t.Error("an event name must trigger event search")
	}

	flagged := &models.PipelineState{NeedsEventSearch: true}
	if !needsEventSearch(flagged) {
		t.Error("the explicit flag must trigger event search")
	}
}

func TestResolveCodes(t *testing.T) {
	tests := []struct {
		destination string
		city        string
		country     string
	}{
		{"Thailand", "BKK", "TH"},
		{"Bangkok, Thailand", "BKK", "TH"},
		{"Paris", "PAR", "FR"},
		{"Zermatt, Switzerland", "ZRH", "CH"},
		{"TOKYO", "TYO", "JP"},
		{"Atlantis", "XXX", ""},
	}
	for _, tt := range tests {
		got := resolveCodes(tt.destination)
		if got.City != tt.city || got.Country != tt.country {
			t.Errorf("resolveCodes(%q) = %+v, want {%s %s}", tt.destination, got, tt.city, tt.country)
		}
	}
}
