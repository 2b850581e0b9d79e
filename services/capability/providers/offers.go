package providers

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"tripflow/models"
)

// OfferEnhancement applies loyalty discounts and supplier ranking overlays
// to raw flight and hotel offers.
type OfferEnhancement struct {
	base
}

func NewOfferEnhancement(logger *zap.Logger) *OfferEnhancement {
	return &OfferEnhancement{base: newBase("offer-enhancement", logger)}
}

// Discount rates per loyalty tier.
var tierDiscounts = map[string]float64{
	"PLATINUM": 0.12,
	"GOLD":     0.08,
	"SILVER":   0.05,
	"STANDARD": 0.0,
}

func (o *OfferEnhancement) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	flightOffers := getSlice(input, "flight_offers")
	hotelOffers := getSlice(input, "hotel_offers")
	profile := getMap(input, "customer_profile")

	tier := getString(profile, "loyalty_tier")
	discount := tierDiscounts[tier]

	var enhanced []map[string]any
	var totalSavings, totalEffective float64

	for _, offer := range flightOffers {
		price := offerPrice(offer)
		saving := price * discount
		totalSavings += saving
		totalEffective += price - saving
		enhanced = append(enhanced, map[string]any{
			"offer_type":      "flight",
			"original_offer":  offer,
			"original_price":  price,
			"discount_rate":   discount,
			"effective_price": price - saving,
		})
	}
	for _, offer := range hotelOffers {
		price := offerPrice(offer)
		saving := price * discount
		totalSavings += saving
		totalEffective += price - saving
		enhanced = append(enhanced, map[string]any{
			"offer_type":      "hotel",
			"original_offer":  offer,
			"original_price":  price,
			"discount_rate":   discount,
			"effective_price": price - saving,
		})
	}

	o.log.Info("offers enhanced",
		zap.String("session_id", sessionID),
		zap.String("loyalty_tier", tier),
		zap.Float64("total_savings", totalSavings))

	data := map[string]any{
		"enhanced_offers":       enhanced,
		"total_savings":         totalSavings,
		"total_effective_price": totalEffective,
		"loyalty_tier":          tier,
	}
	return o.success(data, nil), nil
}

// offerPrice digs the numeric total out of an offer's price map.
func offerPrice(offer map[string]any) float64 {
	price := getMap(offer, "price")
	if price == nil {
		return 0
	}
	switch v := price["total"].(type) {
	case string:
		n, _ := strconv.ParseFloat(v, 64)
		return n
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
