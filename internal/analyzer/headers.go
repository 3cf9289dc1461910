package analyzer

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// headerScoreWeight is the maximum headers sub-score.
const headerScoreWeight = 15

// securityHeaderLabels lists the canonical security response headers the
// check looks for, with their display labels.
var securityHeaderLabels = map[string]string{
	"content-security-policy":   "Content Security Policy",
	"x-frame-options":           "X-Frame-Options",
	"x-content-type-options":    "X-Content-Type-Options",
	"strict-transport-security": "HSTS (Strict Transport)",
	"x-xss-protection":          "XSS Protection",
	"referrer-policy":           "Referrer Policy",
	"permissions-policy":        "Permissions Policy",
}

// HeadersCheck issues a header-only request to the target, following
// redirects, and scores the presence of security response headers.
type HeadersCheck struct {
	Client *http.Client
}

// NewHeadersCheck returns a HeadersCheck with the given request timeout.
func NewHeadersCheck(timeout time.Duration) *HeadersCheck {
	return &HeadersCheck{
		Client: &http.Client{Timeout: timeout},
	}
}

// Check sends a HEAD request. The sub-score scales the present-header count
// to headerScoreWeight; a transport error reports score 5 with zero headers.
func (h *HeadersCheck) Check(ctx context.Context, targetURL string) HeadersResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return h.errorResult(err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return h.errorResult(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	headers := make(map[string]HeaderPresence, len(securityHeaderLabels))
	presentCount := 0
	for name, label := range securityHeaderLabels {
		present := resp.Header.Get(name) != ""
		if present {
			presentCount++
		}
		headers[name] = HeaderPresence{Present: present, Label: label}
	}

	finalURL := resp.Request.URL.String()

	return HeadersResult{
		Status:          ReputationStatusChecked,
		StatusCode:      resp.StatusCode,
		Redirected:      finalURL != targetURL,
		FinalURL:        finalURL,
		Server:          serverHeader(resp.Header),
		PoweredBy:       resp.Header.Get("X-Powered-By"),
		SecurityHeaders: headers,
		PresentCount:    presentCount,
		TotalCount:      len(securityHeaderLabels),
		Score:           headerScore(presentCount, len(securityHeaderLabels)),
	}
}

func headerScore(present, total int) int {
	return int(math.Round(float64(present) / float64(total) * headerScoreWeight))
}

func serverHeader(headers http.Header) string {
	if server := headers.Get("Server"); server != "" {
		return server
	}
	return "Unknown"
}

func (h *HeadersCheck) errorResult(err error) HeadersResult {
	return HeadersResult{
		Status:          ReputationStatusError,
		SecurityHeaders: map[string]HeaderPresence{},
		PresentCount:    0,
		TotalCount:      len(securityHeaderLabels),
		Score:           5,
		Error:           err.Error(),
	}
}
