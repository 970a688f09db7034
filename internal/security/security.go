// internal/security/security.go

// Package security validates untrusted list URLs before they are fetched.
package security

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
)

// Severity levels for security issues
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Config configures the URL validator
type Config struct {
	AllowedSchemes []string `json:"allowed_schemes"`
	BlockedDomains []string `json:"blocked_domains"`
	MaxURLLength   int      `json:"max_url_length"`
	// AllowIPHosts permits literal IP addresses as hosts
	AllowIPHosts bool `json:"allow_ip_hosts"`
}

// DefaultConfig returns the validator defaults
func DefaultConfig() *Config {
	return &Config{
		AllowedSchemes: []string{"https", "http"},
		BlockedDomains: []string{"localhost"},
		MaxURLLength:   2048,
	}
}

// Issue is one reason a URL was rejected or flagged
type Issue struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ValidationResult represents the result of URL validation
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Issues   []Issue  `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Err returns nil for a valid result, otherwise an invalid-list-page error
// naming the first issue
func (vr *ValidationResult) Err() error {
	if vr.Valid {
		return nil
	}
	return weberrors.InvalidListPage(nil, "rejected URL: %s", vr.Issues[0].Message)
}

func (vr *ValidationResult) addIssue(issue Issue) {
	vr.Issues = append(vr.Issues, issue)
	if issue.Severity >= SeverityHigh {
		vr.Valid = false
	}
}

// URLValidator checks list URLs supplied by clients
type URLValidator struct {
	allowedSchemes []string
	blockedDomains []string
	maxURLLength   int
	allowIPHosts   bool
}

// NewURLValidator creates a validator; a nil config uses DefaultConfig
func NewURLValidator(config *Config) *URLValidator {
	if config == nil {
		config = DefaultConfig()
	}
	return &URLValidator{
		allowedSchemes: config.AllowedSchemes,
		blockedDomains: config.BlockedDomains,
		maxURLLength:   config.MaxURLLength,
		allowIPHosts:   config.AllowIPHosts,
	}
}

// ValidateURL checks length, scheme and host of inputURL
func (v *URLValidator) ValidateURL(inputURL string) *ValidationResult {
	result := &ValidationResult{Valid: true, Issues: []Issue{}, Warnings: []string{}}

	if v.maxURLLength > 0 && len(inputURL) > v.maxURLLength {
		result.addIssue(Issue{
			Type:     "url_length_exceeded",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("URL length %d exceeds maximum allowed %d", len(inputURL), v.maxURLLength),
		})
		return result
	}

	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		result.addIssue(Issue{
			Type:     "invalid_url_format",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("invalid URL format: %v", err),
		})
		return result
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		result.addIssue(Issue{
			Type:     "disallowed_scheme",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("scheme %q is not one of %s", parsedURL.Scheme, strings.Join(v.allowedSchemes, ", ")),
		})
	}

	host := strings.ToLower(parsedURL.Hostname())
	switch {
	case host == "":
		result.addIssue(Issue{Type: "missing_host", Severity: SeverityHigh, Message: "URL has no host"})
	case v.isDomainBlocked(host):
		result.addIssue(Issue{
			Type:     "blocked_domain",
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("domain %q is blocked", host),
		})
	case !v.allowIPHosts && net.ParseIP(host) != nil:
		result.addIssue(Issue{
			Type:     "ip_host",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("IP address host %q is not allowed", host),
		})
	}

	if parsedURL.User != nil {
		result.addIssue(Issue{
			Type:     "embedded_credentials",
			Severity: SeverityMedium,
			Message:  "URL contains user information",
		})
		result.Warnings = append(result.Warnings, "credentials in the URL are sent to the list site")
	}

	if parsedURL.Scheme == "http" {
		result.Warnings = append(result.Warnings, "Using HTTP instead of HTTPS reduces security")
	}

	return result
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

func (v *URLValidator) isDomainBlocked(domain string) bool {
	for _, blocked := range v.blockedDomains {
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}
	return false
}

// Check validates rawURL and returns the first blocking issue as an error
func (v *URLValidator) Check(rawURL string) error {
	return v.ValidateURL(rawURL).Err()
}
