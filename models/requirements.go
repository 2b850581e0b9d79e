package models

// TravelRequirements carries everything the extractor could pull out of
// a user request. Zero values mean "not mentioned".
type TravelRequirements struct {
	Destination         string   `json:"destination,omitempty"`
	DestinationType     string   `json:"destination_type,omitempty"`
	EventName           string   `json:"event_name,omitempty"`
	EventType           string   `json:"event_type,omitempty"`
	DepartureDate       string   `json:"departure_date,omitempty"` // YYYY-MM-DD
	ReturnDate          string   `json:"return_date,omitempty"`
	Duration            int      `json:"duration,omitempty"` // days
	Budget              float64  `json:"budget,omitempty"`
	BudgetCurrency      string   `json:"budget_currency,omitempty"`
	Passengers          int      `json:"passengers,omitempty"`
	Children            int      `json:"children,omitempty"`
	TravelClass         string   `json:"travel_class,omitempty"`
	AccommodationType   string   `json:"accommodation_type,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
}

// ToMap renders requirements as the structured map the provider contract
// speaks. Only populated fields are included.
func (r TravelRequirements) ToMap() map[string]any {
	m := map[string]any{}
	if r.Destination != "" {
		m["destination"] = r.Destination
	}
	if r.DestinationType != "" {
		m["destination_type"] = r.DestinationType
	}
	if r.EventName != "" {
		m["event_name"] = r.EventName
	}
	if r.EventType != "" {
		m["event_type"] = r.EventType
	}
	if r.DepartureDate != "" {
		m["departure_date"] = r.DepartureDate
	}
	if r.ReturnDate != "" {
		m["return_date"] = r.ReturnDate
	}
	if r.Duration > 0 {
		m["duration"] = r.Duration
	}
	if r.Budget > 0 {
		m["budget"] = r.Budget
	}
	if r.BudgetCurrency != "" {
		m["budget_currency"] = r.BudgetCurrency
	}
	if r.Passengers > 0 {
		m["passengers"] = r.Passengers
	}
	if r.Children > 0 {
		m["children"] = r.Children
	}
	if r.TravelClass != "" {
		m["travel_class"] = r.TravelClass
	}
	if r.AccommodationType != "" {
		m["accommodation_type"] = r.AccommodationType
	}
	if len(r.SpecialRequirements) > 0 {
		m["special_requirements"] = r.SpecialRequirements
	}
	return m
}

// RequirementsFromMap parses the loosely typed "requirements" map a provider
// result carries back into a typed struct. Unknown keys are ignored.
func RequirementsFromMap(m map[string]any) TravelRequirements {
	var r TravelRequirements
	if m == nil {
		return r
	}
	r.Destination = asString(m["destination"])
	r.DestinationType = asString(m["destination_type"])
	r.EventName = asString(m["event_name"])
	r.EventType = asString(m["event_type"])
	r.DepartureDate = asString(m["departure_date"])
	r.ReturnDate = asString(m["return_date"])
	r.Duration = asInt(m["duration"])
	r.Budget = asFloat(m["budget"])
	r.BudgetCurrency = asString(m["budget_currency"])
	r.Passengers = asInt(m["passengers"])
	r.Children = asInt(m["children"])
	r.TravelClass = asString(m["travel_class"])
	r.AccommodationType = asString(m["accommodation_type"])
	if reqs, ok := m["special_requirements"].([]string); ok {
		r.SpecialRequirements = reqs
	} else if anys, ok := m["special_requirements"].([]any); ok {
		for _, v := range anys {
			if s, ok := v.(string); ok {
				r.SpecialRequirements = append(r.SpecialRequirements, s)
			}
		}
	}
	return r
}

// RequirementsFromResult digs the "requirements" map out of an extraction
// result. Returns the zero value when the result failed or has no data.
func RequirementsFromResult(res *ProviderResult) TravelRequirements {
	if !res.Succeeded() {
		return TravelRequirements{}
	}
	reqs, _ := res.Data["requirements"].(map[string]any)
	return RequirementsFromMap(reqs)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt covers the numeric types Mongo hands back when decoding into
// map[string]any: small BSON numbers arrive as int32.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
