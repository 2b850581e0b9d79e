package providers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripflow/models"
)

// FlightSearch produces flight offers for an origin/destination pair. The
// synthetic dataset stands in for the Amadeus flight-offers integration.
type FlightSearch struct {
	base
}

func NewFlightSearch(logger *zap.Logger) *FlightSearch {
	return &FlightSearch{base: newBase("flight-search", logger)}
}

func (f *FlightSearch) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if fail := requireFields(input, "origin", "destination", "departure_date"); fail != nil {
		return fail, nil
	}

	origin := getString(input, "origin")
	destination := getString(input, "destination")
	departureDate := getString(input, "departure_date")
	travelClass := getString(input, "travel_class")
	if travelClass == "" {
		travelClass = "ECONOMY"
	}
	adults := getInt(input, "adults", 1)

	offers := []map[string]any{
		flightOffer("FL-1", origin, destination, departureDate, "08:00", "14:00", "AA", "AA1234", "599.00", travelClass),
		flightOffer("FL-2", origin, destination, departureDate, "11:30", "18:10", "LH", "LH441", "642.00", travelClass),
		flightOffer("FL-3", origin, destination, departureDate, "21:45", "05:20", "EK", "EK202", "548.00", travelClass),
	}

	f.log.Info("flight offers assembled",
		zap.String("session_id", sessionID),
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Int("offer_count", len(offers)))

	data := map[string]any{
		"offers": offers,
		"search_criteria": map[string]any{
			"origin":         origin,
			"destination":    destination,
			"departure_date": departureDate,
			"return_date":    getString(input, "return_date"),
			"adults":         adults,
			"travel_class":   travelClass,
		},
	}
	meta := map[string]any{"count": len(offers), "currency": "USD", "data_source": "synthetic"}
	return f.success(data, meta), nil
}

func flightOffer(id, origin, destination, date, dep, arr, airline, flightNumber, total, cabin string) map[string]any {
	return map[string]any{
		"id": id,
		"price": map[string]any{
			"currency": "USD",
			"total":    total,
		},
		"segments": []map[string]any{{
			"departure":     map[string]any{"iataCode": origin, "at": fmt.Sprintf("%sT%s:00", date, dep)},
			"arrival":       map[string]any{"iataCode": destination, "at": fmt.Sprintf("%sT%s:00", date, arr)},
			"airline":       airline,
			"flight_number": flightNumber,
			"cabin_class":   cabin,
		}},
		"validating_airline": airline,
	}
}
