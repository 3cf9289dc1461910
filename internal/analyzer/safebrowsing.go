package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultSafeBrowsingBaseURL = "https://safebrowsing.googleapis.com"

// SafeBrowsingCheck matches the full URL against the Google Safe Browsing
// blocklists. Without an API key the check is skipped with benefit of the
// doubt; a provider failure yields a mild penalty instead of reading as
// danger.
type SafeBrowsingCheck struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewSafeBrowsingCheck returns a SafeBrowsingCheck against the production endpoint.
func NewSafeBrowsingCheck(apiKey string, timeout time.Duration) *SafeBrowsingCheck {
	return &SafeBrowsingCheck{
		APIKey:  apiKey,
		BaseURL: defaultSafeBrowsingBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type sbClientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type sbThreatEntry struct {
	URL string `json:"url"`
}

type sbThreatInfo struct {
	ThreatTypes      []string        `json:"threatTypes"`
	PlatformTypes    []string        `json:"platformTypes"`
	ThreatEntryTypes []string        `json:"threatEntryTypes"`
	ThreatEntries    []sbThreatEntry `json:"threatEntries"`
}

type sbRequest struct {
	Client     sbClientInfo `json:"client"`
	ThreatInfo sbThreatInfo `json:"threatInfo"`
}

type sbMatch struct {
	ThreatType   string `json:"threatType"`
	PlatformType string `json:"platformType"`
}

type sbResponse struct {
	Matches []sbMatch `json:"matches"`
}

// Check looks the URL up. Score 30 with no matches, 0 on any match,
// 30 when skipped, 25 on transport or decode failure.
func (s *SafeBrowsingCheck) Check(ctx context.Context, targetURL string) SafeBrowsingResult {
	if s.APIKey == "" {
		return SafeBrowsingResult{
			Status:  ReputationStatusSkipped,
			Safe:    true,
			Threats: []ThreatMatch{},
			Score:   30,
			Message: "API key not configured",
		}
	}

	payload := sbRequest{
		Client: sbClientInfo{ClientID: "fraudshield", ClientVersion: "1.0.0"},
		ThreatInfo: sbThreatInfo{
			ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION"},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []sbThreatEntry{{URL: targetURL}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return s.errorResult(err)
	}

	endpoint := fmt.Sprintf("%s/v4/threatMatches:find?key=%s", s.BaseURL, s.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return s.errorResult(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return s.errorResult(err)
	}
	defer resp.Body.Close()

	var decoded sbResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return s.errorResult(err)
	}

	threats := make([]ThreatMatch, 0, len(decoded.Matches))
	for _, match := range decoded.Matches {
		threats = append(threats, ThreatMatch{Type: match.ThreatType, Platform: match.PlatformType})
	}

	score := 30
	if len(threats) > 0 {
		score = 0
	}

	return SafeBrowsingResult{
		Status:  ReputationStatusChecked,
		Safe:    len(threats) == 0,
		Threats: threats,
		Score:   score,
	}
}

func (s *SafeBrowsingCheck) errorResult(err error) SafeBrowsingResult {
	return SafeBrowsingResult{
		Status:  ReputationStatusError,
		Safe:    true,
		Threats: []ThreatMatch{},
		Score:   25,
		Error:   err.Error(),
	}
}
