package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	sessionRepo "tripflow/database/repository/session"
	"tripflow/models"
	"tripflow/services/capability"
)

// Engine walks a pipeline graph, invokes each phase's capability provider,
// and folds results into the pipeline state. Provider failures degrade the
// phase; only a missing destination at itinerary time is fatal to the run.
type Engine struct {
	providers map[Phase]capability.Provider
	sessions  sessionRepo.SessionRepository
	log       *zap.Logger
	now       func() time.Time
}

// ProviderSet names every provider the engine dispatches to. All fields are
// required.
type ProviderSet struct {
	Extractor    capability.Provider
	Profile      capability.Provider
	Destinations capability.Provider
	Events       capability.Provider
	Flights      capability.Provider
	Hotels       capability.Provider
	Offers       capability.Provider
	Curator      capability.Provider
	Itinerary    capability.Provider
	Visa         capability.Provider
	Health       capability.Provider
	Insurance    capability.Provider
	Seatmap      capability.Provider
}

func NewEngine(set ProviderSet, sessions sessionRepo.SessionRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		providers: map[Phase]capability.Provider{
			PhaseExtractRequirements:  set.Extractor,
			PhaseGetUserProfile:       set.Profile,
			PhaseDiscoverDestinations: set.Destinations,
			PhaseSearchEvents:         set.Events,
			PhaseSearchFlightsHotels:  set.Flights,
			phaseHotelSearch:          set.Hotels,
			PhaseEnhanceOffers:        set.Offers,
			PhaseCurateFlights:        set.Curator,
			PhasePrepareItinerary:     set.Itinerary,
			PhaseCheckVisa:            set.Visa,
			PhaseCheckHealth:          set.Health,
			PhaseQuoteInsurance:       set.Insurance,
			PhaseFetchSeatmap:         set.Seatmap,
		},
		sessions: sessions,
		log:      logger.Named("planner"),
		now:      time.Now,
	}
}

// PlanRequest is the caller-facing input to a planning run.
type PlanRequest struct {
	SessionID           string
	UserRequest         string
	CustomerID          string
	EmailID             string
	Nationality         string
	ConversationContext map[string]any
}

// RunPlanning executes the full planning graph for one request. Provider
// failures never surface as an error; the run always returns a best-effort
// aggregate with a status describing how far it got.
func (e *Engine) RunPlanning(ctx context.Context, req PlanRequest) (*models.PlanningResult, error) {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	state := &models.PipelineState{
		SessionID:           req.SessionID,
		UserRequest:         req.UserRequest,
		CustomerID:          req.CustomerID,
		EmailID:             req.EmailID,
		Nationality:         req.Nationality,
		ConversationContext: req.ConversationContext,
		Status:              models.StatusProcessing,
	}

	log := e.log.With(zap.String("session_id", req.SessionID))
	log.Info("planning run started", zap.String("customer_id", req.CustomerID))

	// Checkpoint one: the session exists before any phase runs.
	e.checkpoint(log, &models.Session{
		SessionID:           req.SessionID,
		CustomerID:          req.CustomerID,
		OriginalRequest:     req.UserRequest,
		Nationality:         req.Nationality,
		ConversationContext: req.ConversationContext,
		Status:              models.StatusProcessing,
	})

	g := planningGraph()
	visited := map[Phase]bool{}
	for phase := g.entry; phase != phaseEnd; {
		if visited[phase] {
			log.Error("graph revisited a phase, stopping run", zap.String("phase", string(phase)))
			break
		}
		visited[phase] = true

		if done := e.runPlanningPhase(ctx, log, phase, state); done {
			break
		}
		phase = g.edges[phase](state)
	}

	if state.Status == models.StatusProcessing {
		if state.Itinerary.Succeeded() {
			e.transition(log, state, models.StatusDraftReady)
		} else {
			e.transition(log, state, models.StatusDraftFailed)
		}
	}

	// Checkpoint two: fold the run back into the durable session.
	session := &models.Session{
		SessionID:           req.SessionID,
		CustomerID:          req.CustomerID,
		OriginalRequest:     req.UserRequest,
		Nationality:         req.Nationality,
		ConversationContext: req.ConversationContext,
		Status:              state.Status,
	}
	if state.ExtractedRequirements.Succeeded() {
		session.ExtractedRequirements = state.Requirements().ToMap()
	}
	if state.Itinerary.Succeeded() {
		session.FinalItinerary = state.Itinerary.Data
	}
	e.checkpoint(log, session)

	log.Info("planning run finished", zap.String("status", string(state.Status)))
	return planningResult(state), nil
}

// runPlanningPhase executes one phase against the state. Returns true when
// the run must stop early (the fatal no-destination condition).
func (e *Engine) runPlanningPhase(ctx context.Context, log *zap.Logger, phase Phase, state *models.PipelineState) bool {
	switch phase {
	case PhaseExtractRequirements:
		state.ExtractedRequirements = e.invokePhase(ctx, log, phase, state.SessionID, map[string]any{
			"user_request":         state.UserRequest,
			"conversation_context": state.ConversationContext,
		})

	case PhaseGetUserProfile:
		customerID := state.CustomerID
		if customerID == "" {
			customerID = state.EmailID
		}
		if customerID == "" {
			customerID = "guest"
		}
		state.UserProfile = e.invokePhase(ctx, log, phase, state.SessionID, map[string]any{
			"customer_id": customerID,
		})

	case PhaseDiscoverDestinations:
		input := state.Requirements().ToMap()
		input["user_request"] = state.UserRequest
		state.DestinationSuggestions = e.invokePhase(ctx, log, phase, state.SessionID, input)

	case PhaseSearchEvents:
		if !needsEventSearch(state) {
			log.Debug("no event hints, skipping event search")
			state.Messages = append(state.Messages, "event search skipped: no event hints in request")
			return false
		}
		reqs := state.Requirements()
		state.EventDetails = e.invokePhase(ctx, log, phase, state.SessionID, map[string]any{
			"event_name":  reqs.EventName,
			"event_type":  reqs.EventType,
			"destination": state.ResolvedDestination(),
		})

	case PhaseSearchFlightsHotels:
		e.runSearchFanOut(ctx, log, state)

	case PhaseEnhanceOffers:
		state.EnhancedOffers = e.invokePhase(ctx, log, phase, state.SessionID, map[string]any{
			"flight_offers":    state.FlightOffers,
			"hotel_offers":     state.HotelOffers,
			"customer_profile": profileData(state),
		})

	case PhaseCurateFlights:
		state.CuratedFlights = e.invokePhase(ctx, log, phase, state.SessionID, map[string]any{
			"flight_offers":    state.FlightOffers,
			"customer_profile": profileData(state),
			"requirements":     state.Requirements().ToMap(),
		})

	case PhasePrepareItinerary:
		if state.ResolvedDestination() == "" {
			log.Warn("no resolvable destination at itinerary phase")
			state.Messages = append(state.Messages, "itinerary skipped: no resolvable destination")
			e.transition(log, state, models.StatusRequirementsMissing)
			return true
		}
		input := map[string]any{
			"requirements":  state.Requirements().ToMap(),
			"flight_offers": state.FlightOffers,
			"hotel_offers":  state.HotelOffers,
		}
		if dest := state.ResolvedDestination(); dest != "" {
			reqs := input["requirements"].(map[string]any)
			reqs["destination"] = dest
		}
		if state.DestinationSuggestions.Succeeded() {
			input["destination_suggestions"] = state.DestinationSuggestions.Data["suggestions"]
		}
		if state.EventDetails.Succeeded() {
			input["events"] = state.EventDetails.Data["events"]
		}
		state.Itinerary = e.invokePhase(ctx, log, phase, state.SessionID, input)
	}
	return false
}

// runSearchFanOut launches flight and hotel search concurrently and merges
// both slots after the join.
func (e *Engine) runSearchFanOut(ctx context.Context, log *zap.Logger, state *models.PipelineState) {
	reqs := state.Requirements()
	destination := state.ResolvedDestination()
	codes := resolveCodes(destination)

	departureDate := reqs.DepartureDate
	if departureDate == "" {
		departureDate = e.now().AddDate(0, 0, 30).Format("2006-01-02")
	}
	duration := reqs.Duration
	if duration <= 0 {
		duration = 7
	}
	returnDate := reqs.ReturnDate
	if returnDate == "" {
		if start, err := time.Parse("2006-01-02", departureDate); err == nil {
			returnDate = start.AddDate(0, 0, duration).Format("2006-01-02")
		}
	}
	passengers := reqs.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	results := fanOut(ctx, state.SessionID, []branch{
		{
			phase:    PhaseSearchFlightsHotels,
			provider: e.providers[PhaseSearchFlightsHotels],
			input: map[string]any{
				"origin":         "JFK",
				"destination":    codes.City,
				"departure_date": departureDate,
				"return_date":    returnDate,
				"adults":         passengers,
				"travel_class":   reqs.TravelClass,
			},
		},
		{
			phase:    phaseHotelSearch,
			provider: e.providers[phaseHotelSearch],
			input: map[string]any{
				"cityCode":     codes.City,
				"checkInDate":  departureDate,
				"checkOutDate": returnDate,
				"adults":       passengers,
			},
		},
	})

	if res := results[PhaseSearchFlightsHotels]; res.Succeeded() {
		state.FlightOffers = sliceOfMaps(res.Data["offers"])
	} else {
		state.FlightOffers = []map[string]any{}
		state.Messages = append(state.Messages, "flight search failed: "+res.Err.Message)
		log.Warn("flight search branch failed", zap.String("reason", res.Err.Message))
	}
	if res := results[phaseHotelSearch]; res.Succeeded() {
		state.HotelOffers = sliceOfMaps(res.Data["hotels"])
	} else {
		state.HotelOffers = []map[string]any{}
		state.Messages = append(state.Messages, "hotel search failed: "+res.Err.Message)
		log.Warn("hotel search branch failed", zap.String("reason", res.Err.Message))
	}
}

// RunCompliance executes the post-confirmation checks for a draft-ready
// session. The four checks fan out concurrently and all merge at finalize.
func (e *Engine) RunCompliance(ctx context.Context, sessionID string) (*models.ComplianceResult, error) {
	log := e.log.With(zap.String("session_id", sessionID))

	session, err := e.sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusDraftReady && session.Status != models.StatusConfirmed {
		return nil, fmt.Errorf("session %s is %s, not confirmable", sessionID, session.Status)
	}
	session.Status = models.StatusConfirmed
	log.Info("compliance run started")

	reqs := models.RequirementsFromMap(session.ExtractedRequirements)
	destination := reqs.Destination
	if destination == "" {
		destination, _ = session.FinalItinerary["destination"].(string)
	}
	codes := resolveCodes(destination)

	nationality := session.Nationality
	if nationality == "" {
		nationality = "US"
	}
	duration := reqs.Duration
	if duration <= 0 {
		duration = 7
	}
	passengers := reqs.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	branches := []branch{
		{
			phase:    PhaseCheckVisa,
			provider: e.providers[PhaseCheckVisa],
			input: map[string]any{
				"nationality":         nationality,
				"destination_country": codes.Country,
			},
		},
		{
			phase:    PhaseCheckHealth,
			provider: e.providers[PhaseCheckHealth],
			input:    map[string]any{"destination_country": codes.Country},
		},
		{
			phase:    PhaseQuoteInsurance,
			provider: e.providers[PhaseQuoteInsurance],
			input: map[string]any{
				"duration":   duration,
				"passengers": passengers,
			},
		},
		{
			phase:    PhaseFetchSeatmap,
			provider: e.providers[PhaseFetchSeatmap],
			input: map[string]any{
				"flight_number": selectedFlightNumber(session.FinalItinerary),
				"travel_class":  reqs.TravelClass,
			},
		},
	}
	results := fanOut(ctx, sessionID, branches)

	// Finalize: the session is travel-ready when every essential check
	// produced an answer. The seat map is a convenience, not a gate.
	status := models.StatusTravelReady
	for _, phase := range []Phase{PhaseCheckVisa, PhaseCheckHealth, PhaseQuoteInsurance} {
		if results[phase].Failed() {
			status = models.StatusFinalizationFailed
			log.Warn("compliance check failed",
				zap.String("phase", string(phase)),
				zap.String("reason", results[phase].Err.Message))
		}
	}

	session.Status = status
	e.checkpoint(log, session)

	log.Info("compliance run finished",
		zap.String("phase", string(PhaseFinalize)),
		zap.String("status", string(status)))
	return &models.ComplianceResult{
		SessionID:                sessionID,
		VisaRequirements:         results[PhaseCheckVisa],
		HealthAdvisory:           results[PhaseCheckHealth],
		InsuranceRecommendations: results[PhaseQuoteInsurance],
		SeatmapData:              results[PhaseFetchSeatmap],
		Status:                   status,
	}, nil
}

// invokePhase calls one provider with the boundary guarantees of the
// pipeline: panics and errors become an integration failure in that phase's
// own slot.
func (e *Engine) invokePhase(ctx context.Context, log *zap.Logger, phase Phase, sessionID string, input map[string]any) *models.ProviderResult {
	provider := e.providers[phase]
	res := invoke(ctx, provider, input, sessionID)
	if res.Failed() {
		log.Warn("phase degraded",
			zap.String("phase", string(phase)),
			zap.String("failure_kind", string(res.Err.Kind)),
			zap.String("reason", res.Err.Message))
	} else {
		log.Debug("phase completed", zap.String("phase", string(phase)))
	}
	return res
}

// transition moves the run's status forward, refusing regressions.
func (e *Engine) transition(log *zap.Logger, state *models.PipelineState, next models.SessionStatus) {
	if !state.Status.CanTransition(next) {
		log.Error("refused status regression",
			zap.String("from", string(state.Status)),
			zap.String("to", string(next)))
		return
	}
	state.Status = next
}

// checkpoint persists the session. A failed checkpoint degrades durability
// only; the run's in-memory result is still returned to the caller.
func (e *Engine) checkpoint(log *zap.Logger, session *models.Session) {
	if err := e.sessions.CreateOrUpdate(session); err != nil {
		log.Error("session checkpoint failed", zap.Error(err))
	}
}

func planningResult(state *models.PipelineState) *models.PlanningResult {
	return &models.PlanningResult{
		SessionID:              state.SessionID,
		Requirements:           state.ExtractedRequirements,
		Profile:                state.UserProfile,
		DestinationSuggestions: state.DestinationSuggestions,
		EventDetails:           state.EventDetails,
		FlightOffers:           state.FlightOffers,
		HotelOffers:            state.HotelOffers,
		EnhancedOffers:         state.EnhancedOffers,
		CuratedFlights:         state.CuratedFlights,
		Itinerary:              state.Itinerary,
		Status:                 state.Status,
	}
}

func profileData(state *models.PipelineState) map[string]any {
	if state.UserProfile.Succeeded() {
		return state.UserProfile.Data
	}
	return map[string]any{}
}

func selectedFlightNumber(itinerary map[string]any) string {
	flight := anyMap(itinerary["selected_flight"])
	if flight == nil {
		return "TBD"
	}
	segments, _ := flight["segments"].([]map[string]any)
	if segments == nil {
		for _, v := range anyList(flight["segments"]) {
			if m := anyMap(v); m != nil {
				segments = append(segments, m)
			}
		}
	}
	if len(segments) > 0 {
		if fn, ok := segments[0]["flight_number"].(string); ok && fn != "" {
			return fn
		}
	}
	return "TBD"
}

// anyMap and anyList accept the dynamic types both encoding/json and the
// Mongo driver produce. Decoding BSON into interface{} yields primitive.M
// and primitive.A, which do not satisfy plain map and slice assertions.
func anyMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case primitive.M:
		return m
	}
	return nil
}

func anyList(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case primitive.A:
		return s
	}
	return nil
}

func sliceOfMaps(v any) []map[string]any {
	if s, ok := v.([]map[string]any); ok {
		return s
	}
	if anys, ok := v.([]any); ok {
		out := make([]map[string]any, 0, len(anys))
		for _, item := range anys {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return []map[string]any{}
}
