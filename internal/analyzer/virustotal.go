package analyzer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fraudshield/fraudshield-cli/internal/shared/constants"
)

const defaultVirusTotalBaseURL = "https://www.virustotal.com"

// VirusTotalCheck looks the URL up against the VirusTotal multi-engine scan
// reports. A URL that has never been scanned is submitted for first-time
// analysis rather than retried.
type VirusTotalCheck struct {
	APIKey        string
	BaseURL       string
	Client        *http.Client
	SubmitTimeout time.Duration
}

// NewVirusTotalCheck returns a VirusTotalCheck against the production API.
// Lookups get the longer timeout; submissions use the standard one.
func NewVirusTotalCheck(apiKey string, submitTimeout time.Duration) *VirusTotalCheck {
	return &VirusTotalCheck{
		APIKey:        apiKey,
		BaseURL:       defaultVirusTotalBaseURL,
		Client:        &http.Client{Timeout: constants.VirusTotalLookupTimeout},
		SubmitTimeout: submitTimeout,
	}
}

type vtEngineResult struct {
	Category string `json:"category"`
	Result   string `json:"result"`
}

type vtResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats   map[string]int            `json:"last_analysis_stats"`
			LastAnalysisResults map[string]vtEngineResult `json:"last_analysis_results"`
		} `json:"attributes"`
	} `json:"data"`
}

// URLIdentifier derives the stable VirusTotal identifier for a URL:
// URL-safe unpadded base64 of the normalized URL.
func URLIdentifier(targetURL string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(targetURL))
}

// Check fetches the latest scan report. Not-found URLs are submitted once
// (status submitted, score 20); rate limiting reports rate_limited (20).
// Found reports are tiered on positives: 25 clean, 15 up to two, 8 up to
// five, 0 beyond. Skipped scores 25; provider errors 20 with safe left true.
func (v *VirusTotalCheck) Check(ctx context.Context, targetURL string) VirusTotalResult {
	if v.APIKey == "" {
		return VirusTotalResult{
			Status:  ReputationStatusSkipped,
			Safe:    true,
			Score:   25,
			Message: "API key not configured",
		}
	}

	endpoint := fmt.Sprintf("%s/api/v3/urls/%s", v.BaseURL, URLIdentifier(targetURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return v.errorResult(err)
	}
	req.Header.Set("x-apikey", v.APIKey)

	resp, err := v.Client.Do(req)
	if err != nil {
		return v.errorResult(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return v.submit(ctx, targetURL)
	case http.StatusTooManyRequests:
		return VirusTotalResult{
			Status:  ReputationStatusRateLimited,
			Safe:    true,
			Score:   20,
			Message: "VirusTotal rate limit reached",
		}
	}

	var decoded vtResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return v.errorResult(err)
	}

	stats := decoded.Data.Attributes.LastAnalysisStats
	positives := stats["malicious"] + stats["suspicious"]
	total := 0
	for _, count := range stats {
		total += count
	}

	score := 25
	switch {
	case positives > 5:
		score = 0
	case positives > 2:
		score = 8
	case positives > 0:
		score = 15
	}

	return VirusTotalResult{
		Status:     ReputationStatusChecked,
		Safe:       positives == 0,
		Positives:  positives,
		Total:      total,
		Harmless:   stats["harmless"],
		Malicious:  stats["malicious"],
		Suspicious: stats["suspicious"],
		Undetected: stats["undetected"],
		FlaggedBy:  flaggedEngines(decoded.Data.Attributes.LastAnalysisResults),
		Score:      score,
	}
}

// submit sends the URL for first-time analysis. One shot, never retried.
func (v *VirusTotalCheck) submit(ctx context.Context, targetURL string) VirusTotalResult {
	submitCtx, cancel := context.WithTimeout(ctx, v.SubmitTimeout)
	defer cancel()

	form := url.Values{"url": {targetURL}}
	req, err := http.NewRequestWithContext(submitCtx, http.MethodPost,
		v.BaseURL+"/api/v3/urls", strings.NewReader(form.Encode()))
	if err != nil {
		return v.errorResult(err)
	}
	req.Header.Set("x-apikey", v.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return v.errorResult(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return VirusTotalResult{
			Status:  ReputationStatusSubmitted,
			Safe:    true,
			Score:   20,
			Message: "URL submitted for first-time analysis",
		}
	}
	return VirusTotalResult{
		Status: ReputationStatusUnknown,
		Safe:   true,
		Score:  20,
	}
}

// flaggedEngines collects up to MaxFlaggedEngines engines with a malicious
// or suspicious verdict, sorted by engine name for stable output.
func flaggedEngines(results map[string]vtEngineResult) []EngineFlag {
	flagged := make([]EngineFlag, 0)
	for engine, verdict := range results {
		if verdict.Category == "malicious" || verdict.Category == "suspicious" {
			flagged = append(flagged, EngineFlag{
				Engine:   engine,
				Category: verdict.Category,
				Result:   verdict.Result,
			})
		}
	}
	sort.Slice(flagged, func(i, j int) bool { return flagged[i].Engine < flagged[j].Engine })
	if len(flagged) > constants.MaxFlaggedEngines {
		flagged = flagged[:constants.MaxFlaggedEngines]
	}
	return flagged
}

func (v *VirusTotalCheck) errorResult(err error) VirusTotalResult {
	return VirusTotalResult{
		Status: ReputationStatusError,
		Safe:   true,
		Score:  20,
		Error:  err.Error(),
	}
}
