package providers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripflow/models"
)

// VisaCheck answers entry-requirement questions from a static rule matrix
// keyed by nationality and destination country.
type VisaCheck struct {
	base
}

func NewVisaCheck(logger *zap.Logger) *VisaCheck {
	return &VisaCheck{base: newBase("visa-check", logger)}
}

type visaRule struct {
	Required       bool
	Type           string
	MaxStayDays    int
	ProcessingDays int
	Notes          string
}

var visaMatrix = map[string]map[string]visaRule{
	"US": {
		"JP": {Required: false, Type: "visa_free", MaxStayDays: 90, Notes: "Visa-free for tourism up to 90 days."},
		"TH": {Required: false, Type: "visa_free", MaxStayDays: 30, Notes: "Visa exemption for stays up to 30 days."},
		"GB": {Required: false, Type: "visa_free", MaxStayDays: 180, Notes: "Visa-free visitor entry up to 6 months."},
		"IN": {Required: true, Type: "e_visa", MaxStayDays: 30, ProcessingDays: 4, Notes: "Apply online for an e-Tourist visa before departure."},
		"FR": {Required: false, Type: "visa_free", MaxStayDays: 90, Notes: "Schengen visa waiver, 90 days in any 180."},
	},
	"GB": {
		"JP": {Required: false, Type: "visa_free", MaxStayDays: 90, Notes: "Visa-free for tourism up to 90 days."},
		"TH": {Required: false, Type: "visa_free", MaxStayDays: 30, Notes: "Visa exemption for stays up to 30 days."},
		"IN": {Required: true, Type: "e_visa", MaxStayDays: 30, ProcessingDays: 4, Notes: "Apply online for an e-Tourist visa before departure."},
		"US": {Required: true, Type: "esta", MaxStayDays: 90, ProcessingDays: 3, Notes: "ESTA authorization required under the Visa Waiver Program."},
		"FR": {Required: false, Type: "visa_free", MaxStayDays: 90, Notes: "Schengen visa waiver, 90 days in any 180."},
	},
	"AU": {
		"JP": {Required: false, Type: "visa_free", MaxStayDays: 90, Notes: "Visa-free for tourism up to 90 days."},
		"TH": {Required: false, Type: "visa_free", MaxStayDays: 30, Notes: "Visa exemption for stays up to 30 days."},
		"GB": {Required: false, Type: "visa_free", MaxStayDays: 180, Notes: "Visa-free visitor entry up to 6 months."},
		"US": {Required: true, Type: "esta", MaxStayDays: 90, ProcessingDays: 3, Notes: "ESTA authorization required under the Visa Waiver Program."},
	},
	"IN": {
		"TH": {Required: true, Type: "visa_on_arrival", MaxStayDays: 15, Notes: "Visa on arrival available at major airports."},
		"JP": {Required: true, Type: "embassy_visa", MaxStayDays: 30, ProcessingDays: 7, Notes: "Tourist visa issued through the embassy."},
		"US": {Required: true, Type: "embassy_visa", MaxStayDays: 180, ProcessingDays: 30, Notes: "B-2 visitor visa with an in-person interview."},
	},
}

func (v *VisaCheck) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if failure := requireFields(input, "nationality", "destination_country"); failure != nil {
		return failure, nil
	}
	nationality := strings.ToUpper(getString(input, "nationality"))
	country := strings.ToUpper(getString(input, "destination_country"))

	rule, ok := visaMatrix[nationality][country]
	if !ok {
		// Unknown pairings fall back to a conservative answer rather than
		// failing the whole compliance pass.
		rule = visaRule{Required: true, Type: "embassy_visa", ProcessingDays: 14, Notes: "No rule on file, confirm with the destination embassy."}
	}

	v.log.Info("visa rule resolved",
		zap.String("session_id", sessionID),
		zap.String("nationality", nationality),
		zap.String("destination_country", country),
		zap.Bool("visa_required", rule.Required))

	data := map[string]any{
		"nationality":         nationality,
		"destination_country": country,
		"visa_required":       rule.Required,
		"visa_type":           rule.Type,
		"max_stay_days":       rule.MaxStayDays,
		"processing_days":     rule.ProcessingDays,
		"notes":               rule.Notes,
	}
	return v.success(data, map[string]any{"data_source": "synthetic"}), nil
}
