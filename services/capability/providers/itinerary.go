package providers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripflow/models"
)

// ItineraryAssembly folds requirements, offers and events into a coherent
// day-by-day itinerary with a rationale.
type ItineraryAssembly struct {
	base
}

func NewItineraryAssembly(logger *zap.Logger) *ItineraryAssembly {
	return &ItineraryAssembly{base: newBase("itinerary-assembly", logger)}
}

func (a *ItineraryAssembly) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	requirements := getMap(input, "requirements")
	destination := getString(requirements, "destination")
	if destination == "" {
		if suggestions := getSlice(input, "destination_suggestions"); len(suggestions) > 0 {
			destination = getString(suggestions[0], "destination")
		}
	}
	if destination == "" {
		return models.ValidationFailure("no resolvable destination for itinerary"), nil
	}

	duration := getInt(requirements, "duration", 7)
	passengers := getInt(requirements, "passengers", 1)
	departureDate := getString(requirements, "departure_date")
	if departureDate == "" {
		departureDate = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	}

	flightOffers := getSlice(input, "flight_offers")
	hotelOffers := getSlice(input, "hotel_offers")
	events := getSlice(input, "events")

	days := buildDays(destination, departureDate, duration, events)

	confidence := 0.5
	if len(flightOffers) > 0 {
		confidence += 0.2
	}
	if len(hotelOffers) > 0 {
		confidence += 0.2
	}

	a.log.Info("itinerary prepared",
		zap.String("session_id", sessionID),
		zap.String("destination", destination),
		zap.Float64("confidence_score", confidence))

	data := map[string]any{
		"destination":    destination,
		"departure_date": departureDate,
		"duration":       duration,
		"passengers":     passengers,
		"days":           days,
		"selected_flight": func() map[string]any {
			if len(flightOffers) > 0 {
				return flightOffers[0]
			}
			return nil
		}(),
		"selected_hotel": func() map[string]any {
			if len(hotelOffers) > 0 {
				return hotelOffers[0]
			}
			return nil
		}(),
		"confidence_score": confidence,
		"rationale":        fmt.Sprintf("%d-day plan for %s balancing arrival logistics, signature sights and any scheduled events.", duration, destination),
	}
	return a.success(data, nil), nil
}

func buildDays(destination, departureDate string, duration int, events []map[string]any) []map[string]any {
	var days []map[string]any
	start, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		start = time.Now().AddDate(0, 0, 30)
	}

	for i := 0; i < duration; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		day := map[string]any{
			"day":  i + 1,
			"date": date,
		}
		switch i {
		case 0:
			day["plan"] = "Arrival, hotel check-in and a relaxed evening orientation walk."
		case duration - 1:
			day["plan"] = "Checkout, last-minute shopping and transfer to the airport."
		default:
			day["plan"] = fmt.Sprintf("Explore %s: signature sights, local food and neighborhood time.", destination)
		}
		// Pin events onto their scheduled day when dates line up.
		for _, ev := range events {
			if getString(ev, "start_date") == date {
				day["event"] = getString(ev, "name")
			}
		}
		days = append(days, day)
	}
	return days
}
