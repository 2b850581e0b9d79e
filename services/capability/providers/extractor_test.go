package providers

import (
	"context"
	"strings"
	"testing"

	"tripflow/models"
)

func extract(t *testing.T, request string) models.TravelRequirements {
	t.Helper()
	e := NewExtractor(nil, nil, nil)
	res, err := e.Execute(context.Background(), map[string]any{"user_request": request}, "test-session")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("extraction failed: %v", res.Err)
	}
	return models.RequirementsFromResult(res)
}

func TestExtractPatterns(t *testing.T) {
	tests := []struct {
		name    string
		request string
		check   func(t *testing.T, r models.TravelRequirements)
	}{
		{
			name:    "known destination with duration and party size",
			request: "Plan a 5 day trip to Paris for 2 people",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.Destination != "Paris" {
					t.Errorf("destination = %q, want Paris", r.Destination)
				}
				if r.Duration != 5 {
					t.Errorf("duration = %d, want 5", r.Duration)
				}
				if r.Passengers != 2 {
					t.Errorf("passengers = %d, want 2", r.Passengers)
				}
			},
		},
		{
			name:    "country standardized to city",
			request: "I want to visit Thailand next month",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.Destination != "Bangkok, Thailand" {
					t.Errorf("destination = %q, want Bangkok, Thailand", r.Destination)
				}
			},
		},
		{
			name:    "vague destination preserved",
			request: "take me somewhere warm for a week",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.Destination != "somewhere warm" {
					t.Errorf("destination = %q, want somewhere warm", r.Destination)
				}
			},
		},
		{
			name:    "event detection",
			request: "I want to see the Water Lantern Festival in Thailand",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.EventName != "Water Lantern Festival" {
					t.Errorf("event_name = %q", r.EventName)
				}
				if r.EventType != "festival" {
					t.Errorf("event_type = %q", r.EventType)
				}
				if r.Destination != "Bangkok, Thailand" {
					t.Errorf("destination = %q", r.Destination)
				}
			},
		},
		{
			name:    "budget and cabin",
			request: "business class to Tokyo with a budget of $3,000",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.Budget != 3000 {
					t.Errorf("budget = %v, want 3000", r.Budget)
				}
				if r.TravelClass != "business" {
					t.Errorf("travel_class = %q, want business", r.TravelClass)
				}
			},
		},
		{
			name:    "iso date picked up",
			request: "trip to London departing 2026-10-01",
			check: func(t *testing.T, r models.TravelRequirements) {
				if r.DepartureDate != "2026-10-01" {
					t.Errorf("departure_date = %q", r.DepartureDate)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, extract(t, tt.request))
		})
	}
}

func TestExtractMergesConversationContext(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	res, err := e.Execute(context.Background(), map[string]any{
		"user_request":         "make it 10 days",
		"conversation_context": map[string]any{"destination": "Paris", "passengers": 2},
	}, "test-session")
	if err != nil || !res.Succeeded() {
		t.Fatalf("Execute: err=%v res=%+v", err, res)
	}
	r := models.RequirementsFromResult(res)
	if r.Destination != "Paris" {
		t.Errorf("context destination lost: %q", r.Destination)
	}
	if r.Duration != 10 {
		t.Errorf("duration = %d, want 10", r.Duration)
	}
}

func TestExtractRequiresUserRequest(t *testing.T) {
	e := NewExtractor(nil, nil, nil)
	res, err := e.Execute(context.Background(), map[string]any{}, "test-session")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Failed() || res.Err.Kind != models.FailureValidation {
		t.Errorf("expected a validation failure, got %+v", res)
	}
}

func TestSanitizePII(t *testing.T) {
	in := "book for john.doe@example.com, call 555-123-4567, passport X1234567, card 4111 1111 1111 1111, ssn 123-45-6789"
	out := sanitizePII(in)

	for _, leaked := range []string{"john.doe@example.com", "555-123-4567", "X1234567", "4111 1111 1111 1111", "123-45-6789"} {
		if strings.Contains(out, leaked) {
			t.Errorf("PII %q leaked through sanitization: %s", leaked, out)
		}
	}
	for _, marker := range []string{"[EMAIL]", "[PHONE]", "[PASSPORT]", "[CARD]", "[SSN]"} {
		if !strings.Contains(out, marker) {
			t.Errorf("expected marker %s in %q", marker, out)
		}
	}
}
