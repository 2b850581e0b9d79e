package providers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// EventSearch finds festivals and events matching the extracted event hints.
type EventSearch struct {
	base
}

func NewEventSearch(logger *zap.Logger) *EventSearch {
	return &EventSearch{base: newBase("event-search", logger)}
}

func (e *EventSearch) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	eventName := strings.ToLower(getString(input, "event_name"))
	eventType := strings.ToLower(getString(input, "event_type"))
	destination := getString(input, "destination")

	if eventName == "" && eventType == "" {
		return models.ValidationFailure("missing required input field: event_name or event_type"), nil
	}

	var events []map[string]any
	switch {
	case strings.Contains(eventName, "water lantern") || strings.Contains(eventName, "lantern"):
		events = append(events, map[string]any{
			"event_id":    "water_lantern_festival_thailand",
			"name":        "Water Lantern Festival",
			"event_type":  "festival",
			"description": "Evening festival where participants release floating lanterns on water.",
			"location":    "Thailand (Chiang Mai, Bangkok)",
			"city":        "Chiang Mai",
			"country":     "Thailand",
			"start_date":  "2025-11-15",
			"end_date":    "2025-11-15",
			"ticket_info": map[string]any{
				"required":        true,
				"advance_booking": "1-2 months in advance",
				"price_range":     "$25-50 USD per person",
			},
			"cultural_significance": "Letting go of negative thoughts and making wishes for the future.",
		})
	case strings.Contains(eventName, "oktoberfest"):
		events = append(events, map[string]any{
			"event_id":    "oktoberfest_munich",
			"name":        "Oktoberfest",
			"event_type":  "festival",
			"description": "The world's largest beer festival and travelling funfair.",
			"location":    "Munich, Germany",
			"city":        "Munich",
			"country":     "Germany",
			"start_date":  "2025-09-20",
			"end_date":    "2025-10-05",
			"ticket_info": map[string]any{
				"required":        false,
				"advance_booking": "Tent reservations recommended months ahead",
				"price_range":     "Free entry; food and drink extra",
			},
		})
	case strings.Contains(eventName, "cherry blossom"):
		events = append(events, map[string]any{
			"event_id":    "cherry_blossom_japan",
			"name":        "Cherry Blossom Festival",
			"event_type":  "seasonal",
			"description": "Hanami season across parks and temples.",
			"location":    "Japan (Tokyo, Kyoto)",
			"city":        "Tokyo",
			"country":     "Japan",
			"start_date":  "2026-03-25",
			"end_date":    "2026-04-10",
		})
	default:
		// Generic synthetic entry keyed to whatever was asked for.
		name := getString(input, "event_name")
		if name == "" {
			name = titleCase(eventType) + " Event"
		}
		events = append(events, map[string]any{
			"event_id":    "generic_event",
			"name":        name,
			"event_type":  eventType,
			"description": "Event details assembled from general knowledge; verify with official sources.",
			"location":    destination,
		})
	}

	e.log.Info("events found",
		zap.String("session_id", sessionID),
		zap.Int("event_count", len(events)))

	data := map[string]any{
		"events":      events,
		"destination": destination,
	}
	return e.success(data, nil), nil
}
