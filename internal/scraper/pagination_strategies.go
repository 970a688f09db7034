// internal/scraper/pagination_strategies.go
package scraper

// TerminationPolicy decides, from a page's next control, whether pagination ends
type TerminationPolicy int

const (
	// PolicyAbsentControl ends when the control is missing or marked disabled.
	PolicyAbsentControl TerminationPolicy = iota
	// PolicyDisabledMarker ends when the control is marked disabled.
	PolicyDisabledMarker
	// PolicyEmptyNext ends when the next URL is empty.
	PolicyEmptyNext
	// PolicySinglePage ends after the first page.
	PolicySinglePage
)

// GetName returns the policy name
func (p TerminationPolicy) GetName() string {
	switch p {
	case PolicyAbsentControl:
		return "absent_control"
	case PolicyDisabledMarker:
		return "disabled_marker"
	case PolicyEmptyNext:
		return "empty_next"
	case PolicySinglePage:
		return "single_page"
	default:
		return "unknown"
	}
}

// Reason records why a pagination run stopped
type Reason string

const (
	ReasonAbsentControl   Reason = "absent_control"
	ReasonDisabledControl Reason = "disabled_control"
	ReasonEmptyNext       Reason = "empty_next"
	ReasonSinglePage      Reason = "single_page"
	ReasonInterstitial    Reason = "interstitial"
	ReasonRevisit         Reason = "revisit"
	ReasonMaxPages        Reason = "max_pages"
	ReasonError           Reason = "error"
)

// Terminal evaluates the next control. A control without a URL is terminal
// under every policy.
func (p TerminationPolicy) Terminal(next NextControl) (Reason, bool) {
	switch p {
	case PolicySinglePage:
		return ReasonSinglePage, true

	case PolicyAbsentControl:
		if !next.Present {
			return ReasonAbsentControl, true
		}
		if next.Disabled {
			return ReasonDisabledControl, true
		}

	case PolicyDisabledMarker:
		if next.Disabled {
			return ReasonDisabledControl, true
		}
		if !next.Present {
			return ReasonAbsentControl, true
		}

	case PolicyEmptyNext:
		if next.URL == "" {
			return ReasonEmptyNext, true
		}
	}

	if next.URL == "" {
		return ReasonEmptyNext, true
	}
	return "", false
}
