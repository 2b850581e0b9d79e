package providers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// ProfileLookup resolves a customer profile with travel history and loyalty
// tier. Unknown customers get a synthesized guest profile rather than an
// error so planning can proceed.
type ProfileLookup struct {
	base
	customers map[string]map[string]any
}

// NewProfileLookup builds the profile provider over a curated customer set.
func NewProfileLookup(logger *zap.Logger) *ProfileLookup {
	return &ProfileLookup{
		base:      newBase("profile-lookup", logger),
		customers: customerDataset(),
	}
}

func (p *ProfileLookup) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if fail := requireFields(input, "customer_id"); fail != nil {
		return fail, nil
	}
	customerID := getString(input, "customer_id")

	if profile, ok := p.customers[customerID]; ok {
		return p.success(profile, map[string]any{"source": "customer_dataset"}), nil
	}

	p.log.Debug("customer not found, synthesizing guest profile",
		zap.String("session_id", sessionID), zap.String("customer_id", customerID))

	guest := map[string]any{
		"customer_id":            customerID,
		"name":                   "Guest Traveler",
		"age":                    35,
		"nationality":            "US",
		"loyalty_tier":           "STANDARD",
		"preferred_destinations": []string{},
		"travel_history":         []map[string]any{},
	}
	if strings.Contains(customerID, "@") {
		guest["email_id"] = customerID
	}
	return p.success(guest, map[string]any{"source": "guest_fallback"}), nil
}

func customerDataset() map[string]map[string]any {
	return map[string]map[string]any{
		"1001": {
			"customer_id":  "1001",
			"name":         "Amelia Chen",
			"age":          41,
			"nationality":  "US",
			"loyalty_tier": "PLATINUM",
			"preferred_destinations": []string{
				"Tokyo", "Singapore", "Paris",
			},
			"travel_history": []map[string]any{
				{"destination": "Tokyo", "cabin_class": "BUSINESS", "departure_date": "2025-03-02"},
				{"destination": "Singapore", "cabin_class": "BUSINESS", "departure_date": "2024-11-18"},
				{"destination": "Paris", "cabin_class": "FIRST", "departure_date": "2024-06-07"},
			},
		},
		"1002": {
			"customer_id":  "1002",
			"name":         "Ravi Subramanian",
			"age":          29,
			"nationality":  "IN",
			"loyalty_tier": "GOLD",
			"preferred_destinations": []string{
				"Bangkok, Thailand", "Dubai",
			},
			"travel_history": []map[string]any{
				{"destination": "Bangkok, Thailand", "cabin_class": "ECONOMY", "departure_date": "2025-01-22"},
				{"destination": "Dubai", "cabin_class": "ECONOMY", "departure_date": "2024-09-30"},
			},
		},
		"1003": {
			"customer_id":            "1003",
			"name":                   "Sofia Marin",
			"age":                    64,
			"nationality":            "UK",
			"loyalty_tier":           "STANDARD",
			"preferred_destinations": []string{"Barcelona, Spain"},
			"travel_history": []map[string]any{
				{"destination": "Barcelona, Spain", "cabin_class": "ECONOMY", "departure_date": "2024-05-14"},
			},
		},
	}
}
