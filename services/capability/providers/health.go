package providers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// HealthAdvisory reports vaccination and health guidance for a destination.
type HealthAdvisory struct {
	base
}

func NewHealthAdvisory(logger *zap.Logger) *HealthAdvisory {
	return &HealthAdvisory{base: newBase("health-advisory", logger)}
}

type healthProfile struct {
	RequiredVaccines    []string
	RecommendedVaccines []string
	Advisories          []string
	RiskLevel           string
}

var healthProfiles = map[string]healthProfile{
	"TH": {
		RecommendedVaccines: []string{"Hepatitis A", "Typhoid", "Tetanus"},
		Advisories:          []string{"Drink bottled water.", "Use mosquito repellent, dengue is present year-round."},
		RiskLevel:           "moderate",
	},
	"IN": {
		RecommendedVaccines: []string{"Hepatitis A", "Typhoid", "Tetanus", "Hepatitis B"},
		Advisories:          []string{"Drink bottled water.", "Malaria prophylaxis recommended for some regions."},
		RiskLevel:           "moderate",
	},
	"JP": {
		RecommendedVaccines: []string{"Routine vaccinations"},
		Advisories:          []string{"Tap water is safe to drink."},
		RiskLevel:           "low",
	},
	"FR": {
		RecommendedVaccines: []string{"Routine vaccinations"},
		Advisories:          []string{"No special precautions required."},
		RiskLevel:           "low",
	},
	"CH": {
		RecommendedVaccines: []string{"Routine vaccinations"},
		Advisories:          []string{"Altitude awareness for alpine resorts."},
		RiskLevel:           "low",
	},
}

func (h *HealthAdvisory) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if failure := requireFields(input, "destination_country"); failure != nil {
		return failure, nil
	}
	country := strings.ToUpper(getString(input, "destination_country"))

	profile, ok := healthProfiles[country]
	if !ok {
		profile = healthProfile{
			RecommendedVaccines: []string{"Routine vaccinations"},
			Advisories:          []string{"No destination-specific guidance on file."},
			RiskLevel:           "unknown",
		}
	}

	h.log.Info("health advisory resolved",
		zap.String("session_id", sessionID),
		zap.String("destination_country", country),
		zap.String("risk_level", profile.RiskLevel))

	data := map[string]any{
		"destination_country":  country,
		"required_vaccines":    profile.RequiredVaccines,
		"recommended_vaccines": profile.RecommendedVaccines,
		"advisories":           profile.Advisories,
		"risk_level":           profile.RiskLevel,
	}
	return h.success(data, map[string]any{"data_source": "synthetic"}), nil
}
