package models

import "strings"

// vagueDestinationPatterns name a region or a mood, not a place a flight
// can be booked to. A destination containing any of them needs discovery.
var vagueDestinationPatterns = []string{
	"europe", "asia", "africa", "america", "oceania", "antarctica",
	"somewhere warm", "somewhere cold", "somewhere snowy",
	"somewhere tropical", "somewhere sunny",
	"beach destination", "mountain destination", "ski destination",
	"winter destination",
	"warm place", "cold place", "snowy place", "tropical place",
	"skiing", "beaches", "mountains", "desert", "islands",
	"anywhere", "abroad",
}

// IsVagueDestination reports whether a destination names a region or mood
// rather than a bookable place. Patterns match on word boundaries so that
// place names containing a region token (Malaysia, Oceanside) stay bookable.
func IsVagueDestination(destination string) bool {
	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest == "" {
		return false
	}
	dest = strings.ReplaceAll(dest, ",", " ")
	padded := " " + dest + " "
	for _, pattern := range vagueDestinationPatterns {
		if strings.Contains(padded, " "+pattern+" ") {
			return true
		}
	}
	return false
}

// PipelineState is the working record threaded through one pipeline run.
// Each phase writes to exactly one slot; no two phases share a slot. The
// state is discarded after the run and folded back into the Session.
type PipelineState struct {
	// Core identifiers.
	SessionID           string
	UserRequest         string
	CustomerID          string
	EmailID             string
	Nationality         string
	ConversationContext map[string]any

	// Phase output slots.
	ExtractedRequirements  *ProviderResult
	UserProfile            *ProviderResult
	DestinationSuggestions *ProviderResult
	EventDetails           *ProviderResult
	FlightOffers           []map[string]any
	HotelOffers            []map[string]any
	EnhancedOffers         *ProviderResult
	CuratedFlights         *ProviderResult
	Itinerary              *ProviderResult

	// Post-confirmation compliance slots.
	VisaRequirements         *ProviderResult
	HealthAdvisory           *ProviderResult
	InsuranceRecommendations *ProviderResult
	SeatmapData              *ProviderResult

	// Flow control.
	Status                    SessionStatus
	NeedsDestinationDiscovery bool
	NeedsEventSearch          bool
	Messages                  []string
}

// Requirements returns the typed view of the extraction slot.
func (s *PipelineState) Requirements() TravelRequirements {
	return RequirementsFromResult(s.ExtractedRequirements)
}

// ResolvedDestination returns the concrete destination for the run: the
// extracted one when present and bookable, otherwise the first discovery
// suggestion. Empty means no destination is resolvable by any means.
func (s *PipelineState) ResolvedDestination() string {
	if dest := s.Requirements().Destination; dest != "" && !IsVagueDestination(dest) {
		return dest
	}
	if s.DestinationSuggestions.Succeeded() {
		if suggestions, ok := s.DestinationSuggestions.Data["suggestions"].([]map[string]any); ok && len(suggestions) > 0 {
			if dest, ok := suggestions[0]["destination"].(string); ok {
				return dest
			}
		}
	}
	return ""
}

// HasDiscoverySuggestions reports whether destination discovery produced at
// least one suggestion.
func (s *PipelineState) HasDiscoverySuggestions() bool {
	if !s.DestinationSuggestions.Succeeded() {
		return false
	}
	suggestions, ok := s.DestinationSuggestions.Data["suggestions"].([]map[string]any)
	return ok && len(suggestions) > 0
}

// PlanningResult is the caller-facing aggregate of a planning run. Partial
// success is expected: slots from failed or skipped phases are simply empty.
type PlanningResult struct {
	SessionID              string           `json:"sessionId"`
	Requirements           *ProviderResult  `json:"requirements,omitempty"`
	Profile                *ProviderResult  `json:"profile,omitempty"`
	DestinationSuggestions *ProviderResult  `json:"destinationSuggestions,omitempty"`
	EventDetails           *ProviderResult  `json:"eventDetails,omitempty"`
	FlightOffers           []map[string]any `json:"flightOffers"`
	HotelOffers            []map[string]any `json:"hotelOffers"`
	EnhancedOffers         *ProviderResult  `json:"enhancedOffers,omitempty"`
	CuratedFlights         *ProviderResult  `json:"curatedFlights,omitempty"`
	Itinerary              *ProviderResult  `json:"itinerary,omitempty"`
	Status                 SessionStatus    `json:"status"`
}

// ComplianceResult aggregates the post-confirmation checks.
type ComplianceResult struct {
	SessionID                string          `json:"sessionId"`
	VisaRequirements         *ProviderResult `json:"visaRequirements,omitempty"`
	HealthAdvisory           *ProviderResult `json:"healthAdvisory,omitempty"`
	InsuranceRecommendations *ProviderResult `json:"insuranceRecommendations,omitempty"`
	SeatmapData              *ProviderResult `json:"seatmapData,omitempty"`
	Status                   SessionStatus   `json:"status"`
}
