package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	sharederrors "github.com/fraudshield/fraudshield-cli/internal/shared/errors"
)

// Target is a normalized analysis target: the full URL handed to the
// reputation services and the bare hostname used for DNS/TLS/WHOIS lookups.
// It is computed once per request and never mutated.
type Target struct {
	URL      string
	Hostname string
}

// NormalizeTarget turns a raw user string into a Target. Input without an
// http/https scheme gets https prepended before parsing, so "example.com"
// and "https://example.com" normalize identically. This is the only
// validation that can abort an analysis; everything past it degrades into
// per-check fallback results instead of failing the request.
func NormalizeTarget(raw string) (Target, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Target{}, sharederrors.ErrMissingURL
	}

	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return Target{}, fmt.Errorf("%w: please enter a valid website address", sharederrors.ErrInvalidURL)
	}

	// Hostnames are case-insensitive; normalize so equal inputs yield equal targets.
	parsed.Host = strings.ToLower(parsed.Host)

	return Target{
		URL:      parsed.String(),
		Hostname: parsed.Hostname(),
	}, nil
}

// RegistrableDomain reduces a hostname to its registrable form for WHOIS
// lookups: subdomains are stripped down to the last two labels.
func RegistrableDomain(hostname string) string {
	parts := strings.Split(hostname, ".")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return hostname
}
