package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// phraseTable collapses synonymous phrasings so semantically equal requests
// hash to the same key. Applied in order, before stop-word removal. The table
// is hardcoded and locale-specific; making it configurable is an open seam.
var phraseTable = []struct{ from, to string }{
	// Destination variations.
	{"thailand trip", "thailand"},
	{"visit thailand", "thailand"},
	{"travel to thailand", "thailand"},
	{"trip to thailand", "thailand"},
	{"thailand vacation", "thailand"},
	{"thailand travel", "thailand"},

	{"paris trip", "paris"},
	{"visit paris", "paris"},
	{"travel to paris", "paris"},
	{"trip to paris", "paris"},
	{"paris vacation", "paris"},

	// Time variations.
	{"next month", "1 month"},
	{"in a month", "1 month"},
	{"in december", "december"},
	{"this december", "december"},

	// Duration variations.
	{"1 week", "7 days"},
	{"one week", "7 days"},
	{"2 weeks", "14 days"},
	{"two weeks", "14 days"},
}

// stopWords are filler words that never affect planning output.
var stopWords = map[string]struct{}{
	"i": {}, "want": {}, "to": {}, "would": {}, "like": {},
	"please": {}, "can": {}, "you": {}, "help": {}, "me": {},
}

// contextWhitelist is the only set of context fields that may influence a
// cache key. Everything else, in particular anything resembling personal
// data, is excluded.
var contextWhitelist = []string{
	"destination", "destination_type", "duration", "budget",
	"budget_currency", "passengers", "travel_class", "accommodation_type",
}

// NormalizeRequest lowers, trims, applies the phrase-equivalence table and
// strips stop words from a user request.
func NormalizeRequest(request string) string {
	if request == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(request))

	for _, sub := range phraseTable {
		normalized = strings.ReplaceAll(normalized, sub.from, sub.to)
	}

	words := strings.Fields(normalized)
	kept := words[:0]
	for _, w := range words {
		if _, drop := stopWords[w]; !drop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// NormalizeContext selects the whitelisted subset of conversation context.
// Nil values are dropped along with every non-whitelisted field.
func NormalizeContext(context map[string]any) map[string]any {
	normalized := map[string]any{}
	for _, field := range contextWhitelist {
		if v, ok := context[field]; ok && v != nil {
			normalized[field] = v
		}
	}
	return normalized
}

// Key derives the content-addressable cache key for a request and its
// context: a SHA-256 hex digest over the canonical JSON encoding of the
// normalized pair. json.Marshal sorts map keys, so field ordering is stable.
func Key(request string, context map[string]any) string {
	payload := struct {
		NormalizedRequest string         `json:"normalized_request"`
		Context           map[string]any `json:"context"`
	}{
		NormalizedRequest: NormalizeRequest(request),
		Context:           NormalizeContext(context),
	}
	encoded, _ := json.Marshal(payload)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
