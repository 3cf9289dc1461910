package analyzer

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCertificateCheckSelfSigned(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	host, port, err := net.SplitHostPort(server.Listener.Addr().String())
	if err != nil {
		t.Fatalf("failed to split listener address: %v", err)
	}

	check := NewCertificateCheck(2 * time.Second)
	check.Port = port
	result := check.Check(context.Background(), host)

	// The test server's certificate is served but not trusted by any root.
	if result.Status != SSLStatusInvalid {
		t.Fatalf("expected status invalid, got %s (error: %s)", result.Status, result.Error)
	}
	if result.Valid {
		t.Fatal("expected valid=false for an untrusted chain")
	}
	if result.IsExpired {
		t.Fatal("test certificate should not be expired")
	}
	if result.Score != 8 {
		t.Fatalf("expected score 8 for untrusted-but-unexpired, got %d", result.Score)
	}
	if result.Fingerprint == "" || len(result.Fingerprint) > fingerprintLength {
		t.Fatalf("unexpected fingerprint %q", result.Fingerprint)
	}
	if !strings.HasPrefix(result.Protocol, "TLS") {
		t.Fatalf("expected a TLS protocol name, got %q", result.Protocol)
	}
	if result.ValidTo == "" || result.ValidFrom == "" {
		t.Fatal("expected the validity window to be reported")
	}
}

func TestCertificateCheckConnectionRefused(t *testing.T) {
	t.Parallel()

	check := NewCertificateCheck(500 * time.Millisecond)
	check.Port = "1" // nothing listens here

	result := check.Check(context.Background(), "127.0.0.1")
	if result.Status != SSLStatusError && result.Status != SSLStatusTimeout {
		t.Fatalf("expected error or timeout status, got %s", result.Status)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0, got %d", result.Score)
	}
	if result.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestWholeDaysBetween(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"400 days ahead", now.AddDate(0, 0, 400), 400},
		{"half a day ahead", now.Add(12 * time.Hour), 0},
		{"expired an hour ago", now.Add(-time.Hour), -1},
		{"expired exactly", now, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wholeDaysBetween(now, tc.to); got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}
