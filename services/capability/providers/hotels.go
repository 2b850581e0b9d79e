package providers

import (
	"context"

	"go.uber.org/zap"

	"tripflow/models"
)

// HotelSearch produces hotel offers per city code. Synthetic data stands in
// for the Amadeus hotel-offers integration.
type HotelSearch struct {
	base
	cityHotels map[string][]map[string]any
}

func NewHotelSearch(logger *zap.Logger) *HotelSearch {
	return &HotelSearch{
		base:       newBase("hotel-search", logger),
		cityHotels: hotelDataset(),
	}
}

func (h *HotelSearch) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if fail := requireFields(input, "cityCode", "checkInDate", "checkOutDate"); fail != nil {
		return fail, nil
	}

	cityCode := getString(input, "cityCode")
	hotels, ok := h.cityHotels[cityCode]
	if !ok {
		hotels = []map[string]any{{
			"hotel_id":  cityCode + "001",
			"name":      "Central City Hotel",
			"rating":    4.0,
			"address":   map[string]any{"cityName": cityCode},
			"price":     map[string]any{"currency": "USD", "total": "140"},
			"room_type": "STANDARD_ROOM",
		}}
	}

	h.log.Info("hotel offers assembled",
		zap.String("session_id", sessionID),
		zap.String("city_code", cityCode),
		zap.Int("hotel_count", len(hotels)))

	data := map[string]any{
		"hotels": hotels,
		"search_criteria": map[string]any{
			"cityCode":     cityCode,
			"checkInDate":  getString(input, "checkInDate"),
			"checkOutDate": getString(input, "checkOutDate"),
			"adults":       getInt(input, "adults", 1),
			"rooms":        getInt(input, "rooms", 1),
		},
	}
	return h.success(data, map[string]any{"count": len(hotels), "data_source": "synthetic"}), nil
}

func hotelDataset() map[string][]map[string]any {
	return map[string][]map[string]any{
		"PAR": {
			{
				"hotel_id":  "PAR001",
				"name":      "Hotel Le Marais",
				"rating":    4.5,
				"address":   map[string]any{"lines": []string{"12 Rue des Archives"}, "cityName": "Paris"},
				"price":     map[string]any{"currency": "USD", "total": "260"},
				"room_type": "DELUXE_ROOM",
				"amenities": []map[string]any{{"description": "City Center Location"}, {"description": "Breakfast Included"}},
			},
			{
				"hotel_id":  "PAR002",
				"name":      "Citadines Saint-Germain",
				"rating":    4.0,
				"address":   map[string]any{"lines": []string{"53 Ter Quai des Grands Augustins"}, "cityName": "Paris"},
				"price":     map[string]any{"currency": "USD", "total": "195"},
				"room_type": "STUDIO",
				"amenities": []map[string]any{{"description": "Seine Views"}, {"description": "Kitchenette"}},
			},
		},
		"BKK": {
			{
				"hotel_id":  "BKK001",
				"name":      "Riva Surya Bangkok",
				"rating":    4.5,
				"address":   map[string]any{"lines": []string{"23 Phra Arthit Road"}, "cityName": "Bangkok"},
				"price":     map[string]any{"currency": "USD", "total": "110"},
				"room_type": "DELUXE_ROOM",
				"amenities": []map[string]any{{"description": "Riverside Pool"}, {"description": "Old Town Location"}},
			},
			{
				"hotel_id":  "BKK002",
				"name":      "Chatrium Hotel Riverside",
				"rating":    4.0,
				"address":   map[string]any{"lines": []string{"28 Charoenkrung Road"}, "cityName": "Bangkok"},
				"price":     map[string]any{"currency": "USD", "total": "85"},
				"room_type": "GRAND_ROOM",
				"amenities": []map[string]any{{"description": "River Shuttle"}, {"description": "Infinity Pool"}},
			},
		},
		"ZUR": {
			{
				"hotel_id":  "ZUR001",
				"name":      "Hotel Alpenblick Zermatt",
				"rating":    4.5,
				"address":   map[string]any{"lines": []string{"Oberdorfstrasse 91"}, "cityName": "Zermatt"},
				"price":     map[string]any{"currency": "USD", "total": "320"},
				"room_type": "ALPINE_SUITE",
				"amenities": []map[string]any{{"description": "Matterhorn Views"}, {"description": "Ski Storage"}},
			},
		},
		"TYO": {
			{
				"hotel_id":  "TYO001",
				"name":      "Shinjuku Granbell Hotel",
				"rating":    4.0,
				"address":   map[string]any{"lines": []string{"2-14-5 Kabukicho"}, "cityName": "Tokyo"},
				"price":     map[string]any{"currency": "USD", "total": "175"},
				"room_type": "SUPERIOR_ROOM",
				"amenities": []map[string]any{{"description": "Rooftop Bar"}, {"description": "Metro Access"}},
			},
		},
	}
}
