package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripflow/cache"
	"tripflow/models"
	"tripflow/services/capability"
)

// Extractor pulls structured travel requirements out of free-form request
// text. When a generative backend is configured it is consulted through the
// response cache; the pattern-based path is the always-available fallback.
type Extractor struct {
	base
	generator capability.Generator
	cache     *cache.ResponseCache
}

// NewExtractor builds the requirement-extraction provider. Both generator
// and responseCache may be nil, leaving pattern extraction only.
func NewExtractor(generator capability.Generator, responseCache *cache.ResponseCache, logger *zap.Logger) *Extractor {
	return &Extractor{
		base:      newBase("requirement-extraction", logger),
		generator: generator,
		cache:     responseCache,
	}
}

func (e *Extractor) Execute(ctx context.Context, input map[string]any, sessionID string) (*models.ProviderResult, error) {
	if fail := requireFields(input, "user_request"); fail != nil {
		return fail, nil
	}

	userRequest := getString(input, "user_request")
	convContext := getMap(input, "conversation_context")

	// PII never reaches the generative backend or the cache key.
	sanitized := sanitizePII(userRequest)
	sanitizedCtx := cache.NormalizeContext(convContext)

	if e.cache != nil {
		if payload, hit := e.cache.Get(ctx, sanitized, sanitizedCtx); hit {
			meta := map[string]any{"cache_hit": true}
			return e.success(payload, meta), nil
		}
	}

	if e.generator != nil {
		data, err := e.extractGenerative(ctx, sanitized, sanitizedCtx)
		if err == nil {
			cached := false
			if e.cache != nil {
				cached = e.cache.Store(ctx, sanitized, sanitizedCtx, data)
			}
			return e.success(data, map[string]any{"cache_hit": false, "cached": cached}), nil
		}
		e.log.Warn("generative extraction failed, using pattern extraction",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	data := extractWithPatterns(userRequest, convContext)
	return e.success(data, map[string]any{"mode": "pattern_fallback"}), nil
}

func (e *Extractor) extractGenerative(ctx context.Context, request string, convContext map[string]any) (map[string]any, error) {
	prompt := buildExtractionPrompt(request, convContext)
	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// Models wrap JSON in markdown fences more often than not.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var data map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &data); err != nil {
		return nil, fmt.Errorf("unparseable extraction response: %w", err)
	}
	if _, ok := data["requirements"]; !ok {
		return nil, fmt.Errorf("extraction response missing requirements object")
	}
	return data, nil
}

func buildExtractionPrompt(request string, convContext map[string]any) string {
	today := time.Now()
	defaultDeparture := today.AddDate(0, 0, 30).Format("2006-01-02")

	contextInfo := ""
	if len(convContext) > 0 {
		encoded, _ := json.Marshal(convContext)
		contextInfo = fmt.Sprintf("\nPREVIOUS CONVERSATION CONTEXT:\n%s\nMerge new information with this context; keep previous values for unmentioned fields.\n", encoded)
	}

	return fmt.Sprintf(`You are a travel planning assistant. Extract travel requirements from the request below.

Rules:
- Standardize city names with country ("Bangkok, Thailand", "Paris, France").
- Keep vague destinations as-is ("somewhere warm", "beach destination", "Europe").
- Detect events and festivals (event_name, event_type).
- Apply sensible defaults: duration 7 days international, passengers 2, travel_class economy.
- Today is %s; default departure_date is %s.
%s
User Request: %q

Return ONLY valid JSON:
{"requirements": {"destination": null, "destination_type": null, "event_name": null, "event_type": null, "departure_date": null, "return_date": null, "duration": null, "budget": null, "budget_currency": "USD", "passengers": 1, "travel_class": null, "accommodation_type": null, "special_requirements": []}, "missing_fields": [], "confidence_score": 0.0}`,
		today.Format("2006-01-02"), defaultDeparture, contextInfo, request)
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	passportPattern = regexp.MustCompile(`\b[A-Z]{1,2}\d{6,9}\b`)
	cardPattern     = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
	ssnPattern      = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

// sanitizePII masks identifying tokens before text leaves the process.
func sanitizePII(request string) string {
	s := emailPattern.ReplaceAllString(request, "[EMAIL]")
	s = cardPattern.ReplaceAllString(s, "[CARD]")
	s = ssnPattern.ReplaceAllString(s, "[SSN]")
	s = phonePattern.ReplaceAllString(s, "[PHONE]")
	s = passportPattern.ReplaceAllString(s, "[PASSPORT]")
	return s
}

var knownDestinations = []struct{ token, destination string }{
	{"thailand", "Bangkok, Thailand"},
	{"bangkok", "Bangkok, Thailand"},
	{"bangalore", "Bangalore, India"},
	{"bengaluru", "Bangalore, India"},
	{"mumbai", "Mumbai, India"},
	{"delhi", "Delhi, India"},
	{"zermatt", "Zermatt, Switzerland"},
	{"munich", "Munich, Germany"},
	{"japan", "Japan"},
	{"new york", "New York"},
	{"paris", "Paris"},
	{"london", "London"},
	{"tokyo", "Tokyo"},
}

var vagueDestinations = []struct{ token, destination string }{
	{"somewhere snowy", "somewhere snowy"},
	{"snowy place", "somewhere snowy"},
	{"somewhere warm", "somewhere warm"},
	{"warm place", "somewhere warm"},
	{"somewhere tropical", "somewhere tropical"},
	{"tropical place", "somewhere tropical"},
	{"beach", "beach destination"},
	{"seaside", "beach destination"},
	{"coastal", "beach destination"},
	{"ski destination", "ski destination"},
	{"skiing", "ski destination"},
	{"mountain destination", "mountain destination"},
}

var (
	durationPattern  = regexp.MustCompile(`(\d+)[\s-]*(?:days?|nights?)`)
	budgetPattern    = regexp.MustCompile(`\$\s*(\d+(?:,\d+)?)|(\d+(?:,\d+)?)\s*(?:\$|dollars?|usd)|budget\s+(?:of\s+|is\s+)?\$?(\d+(?:,\d+)?)`)
	passengerPattern = regexp.MustCompile(`(\d+)\s+(?:people|passengers?|travelers?)|for\s+(\d+)\b`)
	isoDatePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	tripToPattern    = regexp.MustCompile(`(?:plan\s+(?:a\s+)?(?:\d+\s+day\s+)?trip\s+to|visit|travel\s+to|going\s+to|trip\s+to)\s+([a-z][a-z\s,\-]{1,30}?)(?:\s+next|\s+in|\s+for|\s+with|\s*$|\.)`)
)

// extractWithPatterns is the degradation path when no generative backend is
// reachable. Extraction rules mirror the generative contract closely enough
// that downstream phases cannot tell the difference.
func extractWithPatterns(userRequest string, convContext map[string]any) map[string]any {
	reqs := models.RequirementsFromMap(convContext)
	lower := strings.ToLower(userRequest)

	// Events carry destination hints, so they go first.
	switch {
	case strings.Contains(lower, "water lantern") || (strings.Contains(lower, "lantern") && strings.Contains(lower, "festival")):
		reqs.EventName = "Water Lantern Festival"
		reqs.EventType = "festival"
		if strings.Contains(lower, "thailand") {
			reqs.Destination = "Bangkok, Thailand"
		}
	case strings.Contains(lower, "oktoberfest"):
		reqs.EventName = "Oktoberfest"
		reqs.EventType = "festival"
		if strings.Contains(lower, "munich") || strings.Contains(lower, "germany") {
			reqs.Destination = "Munich, Germany"
		}
	case strings.Contains(lower, "cherry blossom"):
		reqs.EventName = "Cherry Blossom Festival"
		reqs.EventType = "seasonal"
		if reqs.Destination == "" && strings.Contains(lower, "japan") {
			reqs.Destination = "Japan"
		}
	case strings.Contains(lower, "festival"):
		reqs.EventType = "festival"
	case strings.Contains(lower, "concert"):
		reqs.EventType = "concert"
	}

	// Vague patterns win over the known-city table so "ski trip to the Alps"
	// still routes through discovery.
	matched := false
	for _, v := range vagueDestinations {
		if strings.Contains(lower, v.token) {
			reqs.Destination = v.destination
			matched = true
			break
		}
	}
	if !matched {
		for _, k := range knownDestinations {
			if strings.Contains(lower, k.token) {
				reqs.Destination = k.destination
				matched = true
				break
			}
		}
	}
	if !matched && reqs.Destination == "" {
		if m := tripToPattern.FindStringSubmatch(lower); m != nil {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) > 2 {
				reqs.Destination = titleCase(candidate)
			}
		}
	}

	if m := durationPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			reqs.Duration = n
		}
	}

	switch {
	case strings.Contains(lower, "business"):
		reqs.TravelClass = "business"
	case strings.Contains(lower, "first class"):
		reqs.TravelClass = "first"
	case strings.Contains(lower, "premium"):
		reqs.TravelClass = "premium_economy"
	case strings.Contains(lower, "economy"):
		reqs.TravelClass = "economy"
	}

	if m := budgetPattern.FindStringSubmatch(lower); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				if n, err := strconv.ParseFloat(strings.ReplaceAll(g, ",", ""), 64); err == nil {
					reqs.Budget = n
				}
				break
			}
		}
	}

	if m := passengerPattern.FindStringSubmatch(lower); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				if n, err := strconv.Atoi(g); err == nil {
					reqs.Passengers = n
				}
				break
			}
		}
	}
	if reqs.Passengers == 0 {
		reqs.Passengers = 1
	}

	if m := isoDatePattern.FindString(lower); m != "" {
		reqs.DepartureDate = m
	}

	var missing []string
	if reqs.Destination == "" {
		missing = append(missing, "destination")
	}
	if reqs.DepartureDate == "" {
		missing = append(missing, "departure_date")
	}
	if reqs.Duration == 0 {
		missing = append(missing, "duration")
	}

	confidence := 0.6
	if reqs.Destination != "" {
		confidence = 0.75
	}

	return map[string]any{
		"requirements":     reqs.ToMap(),
		"missing_fields":   missing,
		"confidence_score": confidence,
		"original_request": userRequest,
	}
}
