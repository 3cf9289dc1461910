package constants

import "time"

const (
	// DefaultCheckTimeout bounds each individual probe (DNS, TLS, HTTP, provider APIs).
	DefaultCheckTimeout = 8 * time.Second
	// VirusTotalLookupTimeout is longer because report lookups are the slowest provider call.
	VirusTotalLookupTimeout = 10 * time.Second
	// AnalysisTimeout caps a whole analysis; every check enforces its own timeout below this.
	AnalysisTimeout = 30 * time.Second
)

const (
	// HTTPSPort is the port probed for certificate inspection.
	HTTPSPort = "443"
	// MaxFlaggedEngines caps how many flagging scan engines are reported per URL.
	MaxFlaggedEngines = 10
	// MaxRequestBodyBytes caps API request bodies.
	MaxRequestBodyBytes = 1 << 20
)
