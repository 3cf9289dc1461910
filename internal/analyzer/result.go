package analyzer

import "time"

// Verdict is the final tri-state classification of a URL.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictDangerous  Verdict = "dangerous"
)

// Report is the full analysis result returned to API and CLI consumers.
// OverallScore is the sum of the five weighted sub-scores; the DNS sub-score
// is displayed but intentionally excluded from the sum (it participates only
// through the hard-override rule on resolution failure).
type Report struct {
	URL          string    `json:"url"`
	Hostname     string    `json:"hostname"`
	ScanDate     time.Time `json:"scanDate"`
	OverallScore int       `json:"overallScore"`
	Verdict      Verdict   `json:"verdict"`
	Checks       Checks    `json:"checks"`
}

// Checks groups the six per-source results. Every field is always populated:
// a check that cannot complete reports its fallback result, never an absence.
type Checks struct {
	DNS          DNSResult          `json:"dns"`
	SSL          SSLResult          `json:"ssl"`
	SafeBrowsing SafeBrowsingResult `json:"safeBrowsing"`
	VirusTotal   VirusTotalResult   `json:"virusTotal"`
	Whois        WhoisResult        `json:"whois"`
	Headers      HeadersResult      `json:"headers"`
}

// DNS statuses
const (
	DNSStatusResolved  = "resolved"
	DNSStatusNoRecords = "no_records"
	DNSStatusFailed    = "failed"
)

// DNSResult reports address, mail, nameserver and text records for the
// hostname. Score: 10 resolved, 2 no records, 0 failed.
type DNSResult struct {
	Status  string   `json:"status"`
	IP      string   `json:"ip,omitempty"`
	AllIPs  []string `json:"allIPs"`
	IPv6    []string `json:"ipv6"`
	MX      []string `json:"mx"`
	NS      []string `json:"ns"`
	TXT     []string `json:"txt"`
	Score   int      `json:"score"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// SSL statuses
const (
	SSLStatusValid         = "valid"
	SSLStatusInvalid       = "invalid"
	SSLStatusNoCertificate = "no_certificate"
	SSLStatusTimeout       = "timeout"
	SSLStatusError         = "error"
)

// SSLResult reports the served certificate even when chain validation fails,
// so an invalid certificate can still be inspected. Score: 20 trusted with
// 30+ days left, 15 trusted but expiring soon, 8 untrusted but unexpired,
// 0 otherwise.
type SSLResult struct {
	Status          string `json:"status"`
	Valid           bool   `json:"valid"`
	Issuer          string `json:"issuer,omitempty"`
	Subject         string `json:"subject,omitempty"`
	ValidFrom       string `json:"validFrom,omitempty"`
	ValidTo         string `json:"validTo,omitempty"`
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
	IsExpired       bool   `json:"isExpired"`
	Protocol        string `json:"protocol,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
	Fingerprint     string `json:"fingerprint,omitempty"`
	Score           int    `json:"score"`
	Error           string `json:"error,omitempty"`
}

// Reputation statuses shared by the Safe Browsing and VirusTotal checks.
const (
	ReputationStatusChecked     = "checked"
	ReputationStatusSkipped     = "skipped"
	ReputationStatusError       = "error"
	ReputationStatusSubmitted   = "submitted"
	ReputationStatusUnknown     = "unknown"
	ReputationStatusRateLimited = "rate_limited"
)

// ThreatMatch is one blocklist hit for the URL.
type ThreatMatch struct {
	Type     string `json:"type"`
	Platform string `json:"platform"`
}

// SafeBrowsingResult reports blocklist matches. Score: 30 clean or skipped,
// 25 on provider error (unknown must not read as danger), 0 on any match.
type SafeBrowsingResult struct {
	Status  string        `json:"status"`
	Safe    bool          `json:"safe"`
	Threats []ThreatMatch `json:"threats"`
	Score   int           `json:"score"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// EngineFlag is one scan engine that flagged the URL.
type EngineFlag struct {
	Engine   string `json:"engine"`
	Category string `json:"category"`
	Result   string `json:"result"`
}

// VirusTotalResult reports multi-engine scan verdicts. Positives counts
// malicious plus suspicious engine verdicts. Score tiers: 25 clean,
// 15 for 1-2 positives, 8 for 3-5, 0 above; 20 for submitted/rate-limited/
// error states and 25 when skipped.
type VirusTotalResult struct {
	Status     string       `json:"status"`
	Safe       bool         `json:"safe"`
	Positives  int          `json:"positives"`
	Total      int          `json:"total"`
	Harmless   int          `json:"harmless,omitempty"`
	Malicious  int          `json:"malicious,omitempty"`
	Suspicious int          `json:"suspicious,omitempty"`
	Undetected int          `json:"undetected,omitempty"`
	FlaggedBy  []EngineFlag `json:"flaggedBy,omitempty"`
	Score      int          `json:"score"`
	Message    string       `json:"message,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// WhoisResult reports domain registration data. DomainAge is nil when the
// registry exposes no creation date. Score tiers reward age: 10 above two
// years down to 1 for brand-new registrations; 5 when skipped or errored.
type WhoisResult struct {
	Status        string   `json:"status"`
	Registrar     string   `json:"registrar,omitempty"`
	Registrant    string   `json:"registrant,omitempty"`
	CreatedDate   string   `json:"createdDate,omitempty"`
	ExpiresDate   string   `json:"expiresDate,omitempty"`
	DomainAge     *int     `json:"domainAge"`
	DomainAgeText string   `json:"domainAgeText,omitempty"`
	NameServers   []string `json:"nameServers,omitempty"`
	Score         int      `json:"score"`
	Message       string   `json:"message,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// HeaderPresence records whether one canonical security header was served.
type HeaderPresence struct {
	Present bool   `json:"present"`
	Label   string `json:"label"`
}

// HeadersResult reports security response headers for the target. Score is
// presentCount/totalCount scaled to 15; 5 on transport error.
type HeadersResult struct {
	Status          string                    `json:"status"`
	StatusCode      int                       `json:"statusCode,omitempty"`
	Redirected      bool                      `json:"redirected"`
	FinalURL        string                    `json:"finalUrl,omitempty"`
	Server          string                    `json:"server,omitempty"`
	PoweredBy       string                    `json:"poweredBy,omitempty"`
	SecurityHeaders map[string]HeaderPresence `json:"securityHeaders"`
	PresentCount    int                       `json:"presentCount"`
	TotalCount      int                       `json:"totalCount"`
	Score           int                       `json:"score"`
	Error           string                    `json:"error,omitempty"`
}
