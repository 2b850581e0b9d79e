package providers

import (
	"context"
	"math"
	"testing"
)

func TestOfferEnhancementAppliesTierDiscount(t *testing.T) {
	o := NewOfferEnhancement(nil)
	res, err := o.Execute(context.Background(), map[string]any{
		"flight_offers": []map[string]any{
			{"id": "FL-1", "price": map[string]any{"currency": "USD", "total": "500.00"}},
		},
		"customer_profile": map[string]any{"loyalty_tier": "PLATINUM"},
	}, "test-session")
	if err != nil || !res.Succeeded() {
		t.Fatalf("Execute: err=%v res=%+v", err, res)
	}

	enhanced, _ := res.Data["enhanced_offers"].([]map[string]any)
	if len(enhanced) != 1 {
		t.Fatalf("enhanced offer count = %d, want 1", len(enhanced))
	}
	effective, _ := enhanced[0]["effective_price"].(float64)
	if math.Abs(effective-440.0) > 0.001 {
		t.Errorf("effective_price = %v, want 440 (12%% off 500)", effective)
	}
	savings, _ := res.Data["total_savings"].(float64)
	if math.Abs(savings-60.0) > 0.001 {
		t.Errorf("total_savings = %v, want 60", savings)
	}
}

func TestOfferEnhancementUnknownTierNoDiscount(t *testing.T) {
	o := NewOfferEnhancement(nil)
	res, err := o.Execute(context.Background(), map[string]any{
		"flight_offers": []map[string]any{
			{"id": "FL-1", "price": map[string]any{"currency": "USD", "total": "500.00"}},
		},
		"customer_profile": map[string]any{},
	}, "test-session")
	if err != nil || !res.Succeeded() {
		t.Fatalf("Execute: err=%v res=%+v", err, res)
	}
	enhanced, _ := res.Data["enhanced_offers"].([]map[string]any)
	effective, _ := enhanced[0]["effective_price"].(float64)
	if effective != 500.0 {
		t.Errorf("effective_price = %v, want full price for unknown tier", effective)
	}
}
