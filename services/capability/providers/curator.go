package providers

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"tripflow/models"
)

// FlightCurator ranks flight offers against customer preferences and
// returns the top picks with a rationale per offer.
type FlightCurator struct {
	base
}

func NewFlightCurator(logger *zap.Logger) *FlightCurator {
	return &FlightCurator{base: newBase("flight-curation", logger)}
}

func (c *FlightCurator) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	flightOffers := getSlice(input, "flight_offers")
	profile := getMap(input, "customer_profile")
	requirements := getMap(input, "requirements")

	if len(flightOffers) == 0 {
		data := map[string]any{
			"curated_flights":     []map[string]any{},
			"curation_confidence": 0.0,
		}
		return c.success(data, map[string]any{"note": "no flight offers to curate"}), nil
	}

	preferredClass := getString(requirements, "travel_class")
	tier := getString(profile, "loyalty_tier")

	type scored struct {
		offer map[string]any
		score float64
		why   []string
	}
	var ranked []scored
	for _, offer := range flightOffers {
		s := scored{offer: offer, score: 0.5}
		price := offerPrice(offer)
		if price > 0 && price < 600 {
			s.score += 0.2
			s.why = append(s.why, "competitive price")
		}
		if preferredClass != "" && firstSegmentCabin(offer) == preferredClass {
			s.score += 0.2
			s.why = append(s.why, "matches preferred cabin class")
		}
		if tier == "PLATINUM" || tier == "GOLD" {
			s.score += 0.1
			s.why = append(s.why, "loyalty tier upgrade eligibility")
		}
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	var curated []map[string]any
	var confidence float64
	for _, s := range top {
		curated = append(curated, map[string]any{
			"original_offer":  s.offer,
			"curation_score":  s.score,
			"curation_reason": s.why,
		})
		confidence += s.score
	}
	confidence /= float64(len(top))

	c.log.Info("flights curated",
		zap.String("session_id", sessionID),
		zap.Int("curated_count", len(curated)),
		zap.Float64("confidence_score", confidence))

	data := map[string]any{
		"curated_flights":     curated,
		"curation_confidence": confidence,
	}
	return c.success(data, nil), nil
}

func firstSegmentCabin(offer map[string]any) string {
	segments := getSlice(offer, "segments")
	if len(segments) == 0 {
		return ""
	}
	return getString(segments[0], "cabin_class")
}
