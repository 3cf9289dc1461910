package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHeadersCheckPartialCoverage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Strict-Transport-Security", "max-age=63072000")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Server", "nginx")
		w.Header().Set("X-Powered-By", "Express")
	}))
	defer server.Close()

	result := NewHeadersCheck(2 * time.Second).Check(context.Background(), server.URL)

	if result.Status != ReputationStatusChecked {
		t.Fatalf("expected status checked, got %s (error: %s)", result.Status, result.Error)
	}
	if result.PresentCount != 4 || result.TotalCount != 7 {
		t.Fatalf("expected 4/7 headers, got %d/%d", result.PresentCount, result.TotalCount)
	}
	// round(4/7 * 15) = 9
	if result.Score != 9 {
		t.Fatalf("expected score 9, got %d", result.Score)
	}
	if result.Server != "nginx" || result.PoweredBy != "Express" {
		t.Fatalf("unexpected server fingerprint %q / %q", result.Server, result.PoweredBy)
	}
	if result.Redirected {
		t.Fatal("expected no redirect")
	}
	if !result.SecurityHeaders["x-frame-options"].Present {
		t.Fatal("expected x-frame-options to be marked present")
	}
	if result.SecurityHeaders["referrer-policy"].Present {
		t.Fatal("expected referrer-policy to be marked absent")
	}
}

func TestHeadersCheckAllPresent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name := range securityHeaderLabels {
			w.Header().Set(name, "set")
		}
	}))
	defer server.Close()

	result := NewHeadersCheck(2 * time.Second).Check(context.Background(), server.URL)
	if result.Score != headerScoreWeight {
		t.Fatalf("expected the full score %d, got %d", headerScoreWeight, result.Score)
	}
	if result.Server != "Unknown" {
		t.Fatalf("expected Unknown server without a Server header, got %q", result.Server)
	}
}

func TestHeadersCheckFollowsRedirects(t *testing.T) {
	t.Parallel()

	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
	}))
	defer final.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusMovedPermanently)
	}))
	defer redirecting.Close()

	result := NewHeadersCheck(2 * time.Second).Check(context.Background(), redirecting.URL)

	if !result.Redirected {
		t.Fatal("expected the redirect to be recorded")
	}
	if result.FinalURL != final.URL {
		t.Fatalf("expected final URL %s, got %s", final.URL, result.FinalURL)
	}
	// Headers are scored at the destination, not the redirector.
	if result.PresentCount != 1 {
		t.Fatalf("expected 1 present header at the destination, got %d", result.PresentCount)
	}
}

func TestHeadersCheckTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := NewHeadersCheck(500 * time.Millisecond).Check(context.Background(), server.URL)
	if result.Status != ReputationStatusError {
		t.Fatalf("expected status error, got %s", result.Status)
	}
	if result.Score != 5 {
		t.Fatalf("expected score 5 on error, got %d", result.Score)
	}
	if result.SecurityHeaders == nil || len(result.SecurityHeaders) != 0 {
		t.Fatalf("expected an empty header map, got %v", result.SecurityHeaders)
	}
	if result.TotalCount != 7 {
		t.Fatalf("expected totalCount 7 even on error, got %d", result.TotalCount)
	}
}

func TestHeaderScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		present int
		want    int
	}{
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 6},
		{4, 9},
		{5, 11},
		{6, 13},
		{7, 15},
	}

	for _, tc := range tests {
		if got := headerScore(tc.present, 7); got != tc.want {
			t.Errorf("headerScore(%d, 7) = %d, want %d", tc.present, got, tc.want)
		}
	}
}
