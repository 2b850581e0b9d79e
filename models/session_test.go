package models

import "testing"

func TestStatusTransitionsMonotonic(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{StatusProcessing, StatusDraftReady, true},
		{StatusProcessing, StatusDraftFailed, true},
		{StatusProcessing, StatusRequirementsMissing, true},
		{StatusDraftReady, StatusConfirmed, true},
		{StatusConfirmed, StatusTravelReady, true},
		{StatusConfirmed, StatusFinalizationFailed, true},

		// Never backward.
		{StatusDraftReady, StatusProcessing, false},
		{StatusConfirmed, StatusDraftReady, false},
		{StatusTravelReady, StatusProcessing, false},
		{StatusTravelReady, StatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []SessionStatus{
		StatusRequirementsMissing, StatusDraftFailed,
		StatusFinalizationFailed, StatusTravelReady,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	open := []SessionStatus{StatusProcessing, StatusDraftReady, StatusConfirmed}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestUnknownStatusNeverTransitions(t *testing.T) {
	if SessionStatus("bogus").CanTransition(StatusDraftReady) {
		t.Error("unknown source status must not transition")
	}
	if StatusProcessing.CanTransition(SessionStatus("bogus")) {
		t.Error("unknown target status must not be reachable")
	}
}
