package planner

import (
	"strings"

	"tripflow/models"
)

// Phase names one pipeline step. Every phase is backed by exactly one
// capability provider and writes exactly one state slot.
type Phase string

const (
	PhaseExtractRequirements  Phase = "extract_requirements"
	PhaseGetUserProfile       Phase = "get_user_profile"
	PhaseDiscoverDestinations Phase = "discover_destinations"
	PhaseSearchEvents         Phase = "search_events"
	PhaseSearchFlightsHotels  Phase = "search_flights_hotels"
	phaseHotelSearch          Phase = "hotel_search" // hotel half of the search fan-out
	PhaseEnhanceOffers        Phase = "enhance_offers"
	PhaseCurateFlights        Phase = "curate_flights"
	PhasePrepareItinerary     Phase = "prepare_itinerary"

	PhaseCheckVisa      Phase = "check_visa"
	PhaseCheckHealth    Phase = "check_health"
	PhaseQuoteInsurance Phase = "quote_insurance"
	PhaseFetchSeatmap   Phase = "fetch_seatmap"
	PhaseFinalize       Phase = "finalize"

	phaseEnd Phase = ""
)

// edge resolves the next phase from the current state. Unconditional edges
// ignore the state.
type edge func(*models.PipelineState) Phase

// graph is a set of phases wired by edges, walked by the engine from entry.
type graph struct {
	entry Phase
	edges map[Phase]edge
}

func always(next Phase) edge {
	return func(*models.PipelineState) Phase { return next }
}

// planningGraph wires the draft-itinerary pipeline. Two edges are
// conditional: destination discovery runs only when the request carries no
// concrete destination, and event search is skipped as a no-op when nothing
// event-shaped was asked for (the skip is the PhaseSearchEvents case of
// Engine.runPlanningPhase).
func planningGraph() graph {
	return graph{
		entry: PhaseExtractRequirements,
		edges: map[Phase]edge{
			PhaseExtractRequirements:  always(PhaseGetUserProfile),
			PhaseGetUserProfile:       routeAfterProfile,
			PhaseDiscoverDestinations: always(PhaseSearchEvents),
			PhaseSearchEvents:         always(PhaseSearchFlightsHotels),
			PhaseSearchFlightsHotels:  always(PhaseEnhanceOffers),
			PhaseEnhanceOffers:        always(PhaseCurateFlights),
			PhaseCurateFlights:        always(PhasePrepareItinerary),
			PhasePrepareItinerary:     always(phaseEnd),
		},
	}
}

// routeAfterProfile picks destination discovery when the extracted
// destination is absent or vague, otherwise goes straight to event search.
func routeAfterProfile(state *models.PipelineState) Phase {
	if needsDestinationDiscovery(state.Requirements()) {
		state.NeedsDestinationDiscovery = true
		return PhaseDiscoverDestinations
	}
	return PhaseSearchEvents
}

func needsDestinationDiscovery(reqs models.TravelRequirements) bool {
	dest := strings.TrimSpace(reqs.Destination)
	if dest == "" {
		// A destination type without a concrete destination still needs
		// discovery; with nothing at all we try discovery too and let the
		// fatal check at itinerary time catch hopeless requests.
		return true
	}
	return models.IsVagueDestination(dest)
}

// needsEventSearch reports whether the request carries anything
// event-shaped worth searching for.
func needsEventSearch(state *models.PipelineState) bool {
	if state.NeedsEventSearch {
		return true
	}
	reqs := state.Requirements()
	return reqs.EventName != "" || reqs.EventType != ""
}
