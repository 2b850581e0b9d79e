package providers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripflow/models"
)

// InsuranceQuote prices travel insurance plans against trip length,
// traveler count and traveler age.
type InsuranceQuote struct {
	base
}

func NewInsuranceQuote(logger *zap.Logger) *InsuranceQuote {
	return &InsuranceQuote{base: newBase("insurance-quote", logger)}
}

type insurancePlan struct {
	Name         string
	DailyRate    float64
	MedicalCover int
	Cancellation bool
}

var insurancePlans = []insurancePlan{
	{Name: "Essential", DailyRate: 4.50, MedicalCover: 50000, Cancellation: false},
	{Name: "Explorer", DailyRate: 8.00, MedicalCover: 250000, Cancellation: true},
	{Name: "Premium", DailyRate: 14.00, MedicalCover: 1000000, Cancellation: true},
}

func (q *InsuranceQuote) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	duration := getInt(input, "duration", 0)
	if duration <= 0 {
		return models.ValidationFailure("duration must be a positive number of days"), nil
	}
	passengers := getInt(input, "passengers", 1)
	age := getInt(input, "traveler_age", 35)

	// Travelers past 60 carry a loaded rate.
	ageFactor := 1.0
	if age >= 60 {
		ageFactor = 1.5
	}

	var quotes []map[string]any
	for _, plan := range insurancePlans {
		price := plan.DailyRate * float64(duration) * float64(passengers) * ageFactor
		quotes = append(quotes, map[string]any{
			"plan":          plan.Name,
			"total_price":   fmt.Sprintf("%.2f", price),
			"currency":      "USD",
			"medical_cover": plan.MedicalCover,
			"cancellation":  plan.Cancellation,
			"duration_days": duration,
			"travelers":     passengers,
		})
	}

	q.log.Info("insurance quotes prepared",
		zap.String("session_id", sessionID),
		zap.Int("duration", duration),
		zap.Int("passengers", passengers))

	data := map[string]any{
		"quotes":           quotes,
		"recommended_plan": "Explorer",
	}
	return q.success(data, map[string]any{"count": len(quotes), "data_source": "synthetic"}), nil
}
