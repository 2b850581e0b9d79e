package providers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// SeatmapLookup resolves the cabin layout and available seats for a
// confirmed flight.
type SeatmapLookup struct {
	base
}

func NewSeatmapLookup(logger *zap.Logger) *SeatmapLookup {
	return &SeatmapLookup{base: newBase("seatmap-lookup", logger)}
}

var cabinLayouts = map[string]struct {
	Rows         int
	SeatsAbreast []string
}{
	"ECONOMY":  {Rows: 30, SeatsAbreast: []string{"A", "B", "C", "D", "E", "F"}},
	"BUSINESS": {Rows: 8, SeatsAbreast: []string{"A", "C", "D", "F"}},
	"FIRST":    {Rows: 4, SeatsAbreast: []string{"A", "F"}},
}

func (s *SeatmapLookup) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if failure := requireFields(input, "flight_number"); failure != nil {
		return failure, nil
	}
	flightNumber := getString(input, "flight_number")
	cabin := strings.ToUpper(getString(input, "travel_class"))
	if cabin == "" {
		cabin = "ECONOMY"
	}

	layout, ok := cabinLayouts[cabin]
	if !ok {
		return models.ValidationFailure("unknown travel class: " + cabin), nil
	}

	var available []string
	for row := 5; row <= layout.Rows; row += 3 {
		for _, letter := range layout.SeatsAbreast {
			if (row+len(letter))%2 == 0 {
				available = append(available, fmt.Sprintf("%d%s", row, letter))
			}
		}
	}

	s.log.Info("seatmap resolved",
		zap.String("session_id", sessionID),
		zap.String("flight_number", flightNumber),
		zap.String("cabin", cabin))

	data := map[string]any{
		"flight_number":   flightNumber,
		"cabin":           cabin,
		"rows":            layout.Rows,
		"available_seats": available,
	}
	return s.success(data, map[string]any{"count": len(available), "data_source": "synthetic"}), nil
}
