package cache

import "testing"

func TestNormalizeRequest(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Thailand  ", "thailand"},
		{"phrase substitution", "trip to thailand", "thailand"},
		{"duration substitution", "paris for one week", "paris for 7 days"},
		{"time substitution", "visit paris next month", "paris 1 month"},
		{"stop words removed", "I want to visit Thailand", "thailand"},
		{"empty request", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRequest(tt.in); got != tt.want {
				t.Errorf("NormalizeRequest(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeRequestIdempotent(t *testing.T) {
	inputs := []string{
		"I want to visit Thailand next month",
		"trip to paris for one week",
		"somewhere warm in december",
	}
	for _, in := range inputs {
		once := NormalizeRequest(in)
		twice := NormalizeRequest(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestKeyCollapsesEquivalentPhrasings(t *testing.T) {
	variants := []string{
		"I want to visit Thailand",
		"travel to Thailand",
		"Thailand trip",
		"trip to thailand please",
	}
	base := Key(variants[0], nil)
	for _, v := range variants[1:] {
		if got := Key(v, nil); got != base {
			t.Errorf("Key(%q) = %s, want same key as %q (%s)", v, got, variants[0], base)
		}
	}
}

func TestKeyDistinguishesDifferentRequests(t *testing.T) {
	if Key("trip to thailand", nil) == Key("trip to paris", nil) {
		t.Error("different destinations must not collide")
	}
}

func TestNormalizeContextWhitelist(t *testing.T) {
	ctx := map[string]any{
		"destination":  "Thailand",
		"duration":     7,
		"passengers":   2,
		"customer_id":  "1001",
		"email":        "traveler@example.com",
		"passport_no":  "X1234567",
		"nationality":  "US",
		"travel_class": "ECONOMY",
	}
	got := NormalizeContext(ctx)

	for _, allowed := range []string{"destination", "duration", "passengers", "travel_class"} {
		if _, ok := got[allowed]; !ok {
			t.Errorf("whitelisted field %q missing from normalized context", allowed)
		}
	}
	for _, blocked := range []string{"customer_id", "email", "passport_no", "nationality"} {
		if _, ok := got[blocked]; ok {
			t.Errorf("non-whitelisted field %q leaked into normalized context", blocked)
		}
	}
}

func TestKeyIgnoresNonWhitelistedContext(t *testing.T) {
	base := Key("trip to paris", map[string]any{"duration": 7})
	withPII := Key("trip to paris", map[string]any{"duration": 7, "email": "a@b.c", "customer_id": "1001"})
	if base != withPII {
		t.Error("personal context fields must not influence the cache key")
	}
}

func TestKeyIsStableLength(t *testing.T) {
	key := Key("trip to thailand", map[string]any{"duration": 7})
	if len(key) != 64 {
		t.Errorf("expected 64 hex chars, got %d (%s)", len(key), key)
	}
}
