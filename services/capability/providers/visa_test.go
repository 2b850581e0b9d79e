package providers

import (
	"context"
	"testing"

	"tripflow/models"
)

func TestVisaCheckMatrix(t *testing.T) {
	tests := []struct {
		name        string
		nationality string
		country     string
		required    bool
		visaType    string
	}{
		{"US to Thailand", "US", "TH", false, "visa_free"},
		{"US to India", "US", "IN", true, "e_visa"},
		{"GB to US", "GB", "US", true, "esta"},
		{"IN to Thailand", "IN", "TH", true, "visa_on_arrival"},
		{"lowercase input", "us", "jp", false, "visa_free"},
		{"unknown pairing falls back conservatively", "BR", "KZ", true, "embassy_visa"},
	}

	v := NewVisaCheck(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.Execute(context.Background(), map[string]any{
				"nationality":         tt.nationality,
				"destination_country": tt.country,
			}, "test-session")
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !res.Succeeded() {
				t.Fatalf("visa check failed: %v", res.Err)
			}
			if got := res.Data["visa_required"].(bool); got != tt.required {
				t.Errorf("visa_required = %v, want %v", got, tt.required)
			}
			if got := res.Data["visa_type"].(string); got != tt.visaType {
				t.Errorf("visa_type = %q, want %q", got, tt.visaType)
			}
		})
	}
}

func TestVisaCheckRequiresInputs(t *testing.T) {
	v := NewVisaCheck(nil)
	res, err := v.Execute(context.Background(), map[string]any{"nationality": "US"}, "test-session")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Failed() || res.Err.Kind != models.FailureValidation {
		t.Errorf("expected validation failure for missing destination_country, got %+v", res)
	}
}
