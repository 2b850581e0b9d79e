package providers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// DestinationDiscovery suggests concrete destinations for vague requests
// ("somewhere warm", "ski destination", a bare continent).
type DestinationDiscovery struct {
	base
}

func NewDestinationDiscovery(logger *zap.Logger) *DestinationDiscovery {
	return &DestinationDiscovery{base: newBase("destination-discovery", logger)}
}

func (d *DestinationDiscovery) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	destinationType := strings.ToLower(getString(input, "destination_type"))
	destination := strings.ToLower(getString(input, "destination"))
	budget := getFloat(input, "budget")

	criteria := destinationType + " " + destination

	var suggestions []map[string]any
	switch {
	case containsAny(criteria, "snowy", "snow", "ski", "winter", "cold", "mountain"):
		suggestions = snowyDestinations(budget)
	case containsAny(criteria, "beach", "warm", "tropical", "island"):
		suggestions = beachDestinations()
	case strings.Contains(criteria, "city"):
		suggestions = []map[string]any{{
			"destination":   "Barcelona, Spain",
			"country":       "Spain",
			"reason":        "Vibrant European city with culture",
			"season_score":  0.7,
			"budget_fit":    "medium",
			"highlights":    []string{"Architecture", "Museums", "Food scene"},
			"best_duration": "4-6 days",
		}}
	default:
		suggestions = []map[string]any{{
			"destination":   "Paris, France",
			"country":       "France",
			"reason":        "Classic travel destination",
			"season_score":  0.6,
			"budget_fit":    "high",
			"highlights":    []string{"Iconic landmarks", "Art museums", "Cuisine"},
			"best_duration": "5-7 days",
		}}
	}

	d.log.Info("destination suggestions generated",
		zap.String("session_id", sessionID),
		zap.Int("suggestion_count", len(suggestions)))

	data := map[string]any{
		"suggestions": suggestions,
		"search_criteria": map[string]any{
			"destination_type": destinationType,
			"budget":           budget,
			"travelers":        getInt(input, "passengers", 1),
		},
		"confidence_score": 0.7,
	}
	return d.success(data, nil), nil
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func snowyDestinations(budget float64) []map[string]any {
	zermattFit := "high"
	if budget > 2000 {
		zermattFit = "luxury"
	}
	return []map[string]any{
		{
			"destination":   "Zermatt, Switzerland",
			"country":       "Switzerland",
			"reason":        "Alpine resort with guaranteed snow and Matterhorn views",
			"season_score":  0.95,
			"budget_fit":    zermattFit,
			"highlights":    []string{"Matterhorn views", "Year-round skiing", "Car-free village"},
			"best_duration": "6-8 days",
		},
		{
			"destination":   "Aspen, Colorado",
			"country":       "USA",
			"reason":        "Premium ski destination with excellent early-season conditions",
			"season_score":  0.9,
			"budget_fit":    "high",
			"highlights":    []string{"World-class skiing", "Mountain dining", "Apres-ski culture"},
			"best_duration": "5-7 days",
		},
		{
			"destination":   "Whistler, British Columbia",
			"country":       "Canada",
			"reason":        "Olympic ski resort with reliable early season snow",
			"season_score":  0.85,
			"budget_fit":    "medium",
			"highlights":    []string{"2010 Olympics venue", "Village atmosphere", "Dual mountain skiing"},
			"best_duration": "6-8 days",
		},
	}
}

func beachDestinations() []map[string]any {
	return []map[string]any{
		{
			"destination":   "Bali, Indonesia",
			"country":       "Indonesia",
			"reason":        "Popular beach destination with good value and cultural richness",
			"season_score":  0.8,
			"budget_fit":    "medium",
			"highlights":    []string{"Beautiful beaches", "Temples", "Affordable luxury"},
			"best_duration": "7-10 days",
		},
		{
			"destination":   "Maldives",
			"country":       "Maldives",
			"reason":        "Tropical paradise with overwater villas",
			"season_score":  0.9,
			"budget_fit":    "luxury",
			"highlights":    []string{"Overwater bungalows", "Crystal clear waters", "World-class diving"},
			"best_duration": "5-7 days",
		},
	}
}
