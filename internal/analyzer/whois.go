package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultWhoisBaseURL = "https://api.whoisfreaks.com"

// Domain age score tiers, in days. Older registrations score higher;
// brand-new domains are treated as suspicious. A deliberate heuristic,
// not a proven signal.
const (
	domainAgeTierTwoYears   = 730
	domainAgeTierOneYear    = 365
	domainAgeTierSixMonths  = 180
	domainAgeTierOneMonth   = 30
)

// WhoisCheck queries the registration record for the registrable form of the
// hostname and scores the domain's age.
type WhoisCheck struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	// Now is overridable for age-tier tests.
	Now func() time.Time
}

// NewWhoisCheck returns a WhoisCheck against the production lookup service.
func NewWhoisCheck(apiKey string, timeout time.Duration) *WhoisCheck {
	return &WhoisCheck{
		APIKey:  apiKey,
		BaseURL: defaultWhoisBaseURL,
		Client:  &http.Client{Timeout: timeout},
		Now:     time.Now,
	}
}

type whoisRegistrar struct {
	RegistrarName string `json:"registrar_name"`
}

type whoisRegistrant struct {
	Company string `json:"company"`
	Name    string `json:"name"`
}

type whoisResponse struct {
	CreateDate        string          `json:"create_date"`
	DomainRegistered  string          `json:"domain_registered"`
	ExpiryDate        string          `json:"expiry_date"`
	RegistrarName     string          `json:"registrar_name"`
	DomainRegistrar   whoisRegistrar  `json:"domain_registrar"`
	RegistrantContact whoisRegistrant `json:"registrant_contact"`
	NameServers       []string        `json:"name_servers"`
}

// Check looks up the registration record. Skipped and error conditions both
// land on the neutral score 5; otherwise the score follows the age tiers.
func (w *WhoisCheck) Check(ctx context.Context, hostname string) WhoisResult {
	if w.APIKey == "" {
		return WhoisResult{
			Status:  ReputationStatusSkipped,
			Score:   5,
			Message: "API key not configured",
		}
	}

	domain := RegistrableDomain(hostname)
	endpoint := fmt.Sprintf("%s/v1.0/whois?apiKey=%s&whois=live&domainName=%s",
		w.BaseURL, url.QueryEscape(w.APIKey), url.QueryEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return w.errorResult(err)
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return w.errorResult(err)
	}
	defer resp.Body.Close()

	var decoded whoisResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return w.errorResult(err)
	}

	result := WhoisResult{
		Status:      ReputationStatusChecked,
		Registrar:   registrarName(decoded),
		Registrant:  registrantName(decoded),
		CreatedDate: firstNonEmpty(decoded.CreateDate, decoded.DomainRegistered),
		ExpiresDate: decoded.ExpiryDate,
		NameServers: decoded.NameServers,
		Score:       5,
	}

	if created, ok := parseWhoisDate(result.CreatedDate); ok {
		age := wholeDaysBetween(created, w.Now())
		result.DomainAge = &age
		result.Score = domainAgeScore(age)
	}
	result.DomainAgeText = domainAgeText(result.DomainAge)

	return result
}

// domainAgeScore maps a domain age in days onto the tiered sub-score.
func domainAgeScore(ageDays int) int {
	switch {
	case ageDays > domainAgeTierTwoYears:
		return 10
	case ageDays > domainAgeTierOneYear:
		return 8
	case ageDays > domainAgeTierSixMonths:
		return 6
	case ageDays > domainAgeTierOneMonth:
		return 4
	default:
		return 1
	}
}

// domainAgeText renders a human label: years above one year, months above
// one month, raw days below, "Unknown" without a creation date.
func domainAgeText(ageDays *int) string {
	if ageDays == nil {
		return "Unknown"
	}
	switch age := *ageDays; {
	case age > domainAgeTierOneYear:
		return fmt.Sprintf("%d years", age/365)
	case age > domainAgeTierOneMonth:
		return fmt.Sprintf("%d months", age/30)
	default:
		return fmt.Sprintf("%d days", age)
	}
}

// whoisDateLayouts covers the formats the registry returns creation dates in.
var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseWhoisDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range whoisDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func registrarName(decoded whoisResponse) string {
	if decoded.DomainRegistrar.RegistrarName != "" {
		return decoded.DomainRegistrar.RegistrarName
	}
	if decoded.RegistrarName != "" {
		return decoded.RegistrarName
	}
	return "Unknown"
}

func registrantName(decoded whoisResponse) string {
	if decoded.RegistrantContact.Company != "" {
		return decoded.RegistrantContact.Company
	}
	return decoded.RegistrantContact.Name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (w *WhoisCheck) errorResult(err error) WhoisResult {
	return WhoisResult{
		Status: ReputationStatusError,
		Score:  5,
		Error:  err.Error(),
	}
}
