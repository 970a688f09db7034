// internal/scraper/pagination_strategies_test.go
package scraper

import "testing"

func TestTerminationPolicy_Terminal(t *testing.T) {
	enabled := NextControl{Present: true, URL: "https://example.com/?page=2"}
	disabled := NextControl{Present: true, Disabled: true, URL: "https://example.com/?page=2"}
	noURL := NextControl{Present: true}
	absent := NextControl{}

	tests := []struct {
		name   string
		policy TerminationPolicy
		next   NextControl
		reason Reason
		done   bool
	}{
		{"absent control: enabled", PolicyAbsentControl, enabled, "", false},
		{"absent control: disabled", PolicyAbsentControl, disabled, ReasonDisabledControl, true},
		{"absent control: missing", PolicyAbsentControl, absent, ReasonAbsentControl, true},
		{"disabled marker: enabled", PolicyDisabledMarker, enabled, "", false},
		{"disabled marker: disabled", PolicyDisabledMarker, disabled, ReasonDisabledControl, true},
		{"disabled marker: missing", PolicyDisabledMarker, absent, ReasonAbsentControl, true},
		{"disabled marker: no url", PolicyDisabledMarker, noURL, ReasonEmptyNext, true},
		{"empty next: url", PolicyEmptyNext, enabled, "", false},
		{"empty next: no url", PolicyEmptyNext, noURL, ReasonEmptyNext, true},
		{"empty next: missing", PolicyEmptyNext, absent, ReasonEmptyNext, true},
		{"single page", PolicySinglePage, enabled, ReasonSinglePage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, done := tt.policy.Terminal(tt.next)
			if done != tt.done || reason != tt.reason {
				t.Errorf("Terminal(%+v) = (%q, %v), want (%q, %v)", tt.next, reason, done, tt.reason, tt.done)
			}
		})
	}
}

func TestTerminationPolicy_GetName(t *testing.T) {
	if PolicyDisabledMarker.GetName() != "disabled_marker" {
		t.Errorf("unexpected name %q", PolicyDisabledMarker.GetName())
	}
	if TerminationPolicy(42).GetName() != "unknown" {
		t.Errorf("expected unknown for out of range policy")
	}
}
