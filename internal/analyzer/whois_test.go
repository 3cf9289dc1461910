package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newWhoisTestCheck(serverURL string, now time.Time) *WhoisCheck {
	check := NewWhoisCheck("test-key", 2*time.Second)
	check.BaseURL = serverURL
	check.Now = func() time.Time { return now }
	return check
}

func TestWhoisSkippedWithoutKey(t *testing.T) {
	t.Parallel()

	result := NewWhoisCheck("", 2*time.Second).Check(context.Background(), "example.com")
	if result.Status != ReputationStatusSkipped {
		t.Fatalf("expected status skipped, got %s", result.Status)
	}
	if result.Score != 5 {
		t.Fatalf("expected neutral score 5, got %d", result.Score)
	}
}

func TestWhoisChecked(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/whois" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("apiKey") != "test-key" || q.Get("whois") != "live" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		// Subdomains are reduced to the registrable domain before lookup.
		if q.Get("domainName") != "example.com" {
			t.Errorf("expected domainName example.com, got %q", q.Get("domainName"))
		}
		_, _ = w.Write([]byte(`{
			"create_date": "2020-03-01",
			"expiry_date": "2030-03-01",
			"domain_registrar": {"registrar_name": "Example Registrar"},
			"registrant_contact": {"company": "Example Corp"},
			"name_servers": ["ns1.example.com", "ns2.example.com"]
		}`))
	}))
	defer server.Close()

	result := newWhoisTestCheck(server.URL, now).Check(context.Background(), "www.example.com")

	if result.Status != ReputationStatusChecked {
		t.Fatalf("expected status checked, got %s (error: %s)", result.Status, result.Error)
	}
	if result.Registrar != "Example Registrar" {
		t.Fatalf("unexpected registrar %q", result.Registrar)
	}
	if result.Registrant != "Example Corp" {
		t.Fatalf("unexpected registrant %q", result.Registrant)
	}
	if result.DomainAge == nil {
		t.Fatal("expected a computed domain age")
	}
	// Six years old: top tier.
	if result.Score != 10 {
		t.Fatalf("expected score 10 for a six-year-old domain, got %d", result.Score)
	}
	if result.DomainAgeText != "6 years" {
		t.Fatalf("unexpected age text %q", result.DomainAgeText)
	}
	if len(result.NameServers) != 2 {
		t.Fatalf("expected 2 name servers, got %d", len(result.NameServers))
	}
}

func TestWhoisAgeTiers(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		ageDays   int
		wantScore int
	}{
		{1000, 10},
		{731, 10},
		{730, 8},
		{400, 8},
		{365, 6},
		{200, 6},
		{180, 4},
		{90, 4},
		{30, 1},
		{5, 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(fmt.Sprintf("%d_days", tc.ageDays), func(t *testing.T) {
			t.Parallel()

			created := now.AddDate(0, 0, -tc.ageDays).Format("2006-01-02")
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"create_date": %q}`, created)
			}))
			defer server.Close()

			result := newWhoisTestCheck(server.URL, now).Check(context.Background(), "example.com")
			if result.DomainAge == nil || *result.DomainAge != tc.ageDays {
				t.Fatalf("expected age %d, got %v", tc.ageDays, result.DomainAge)
			}
			if result.Score != tc.wantScore {
				t.Fatalf("age %d: expected score %d, got %d", tc.ageDays, tc.wantScore, result.Score)
			}
		})
	}
}

func TestWhoisMissingCreateDate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"registrar_name": "Example Registrar"}`))
	}))
	defer server.Close()

	result := newWhoisTestCheck(server.URL, time.Now()).Check(context.Background(), "example.com")
	if result.DomainAge != nil {
		t.Fatalf("expected nil age without a creation date, got %d", *result.DomainAge)
	}
	if result.Score != 5 {
		t.Fatalf("expected neutral score 5, got %d", result.Score)
	}
	if result.DomainAgeText != "Unknown" {
		t.Fatalf("expected age text Unknown, got %q", result.DomainAgeText)
	}
	if result.Registrar != "Example Registrar" {
		t.Fatalf("expected the top-level registrar fallback, got %q", result.Registrar)
	}
}

func TestWhoisTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := newWhoisTestCheck(server.URL, time.Now()).Check(context.Background(), "example.com")
	if result.Status != ReputationStatusError {
		t.Fatalf("expected status error, got %s", result.Status)
	}
	if result.Score != 5 {
		t.Fatalf("expected neutral score 5, got %d", result.Score)
	}
}

func TestParseWhoisDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  string
		wantOK bool
	}{
		{"2020-03-01T12:00:00Z", true},
		{"2020-03-01 12:00:00", true},
		{"2020-03-01", true},
		{"March 1, 2020", false},
		{"", false},
	}

	for _, tc := range tests {
		if _, ok := parseWhoisDate(tc.value); ok != tc.wantOK {
			t.Errorf("parseWhoisDate(%q) ok=%v, want %v", tc.value, ok, tc.wantOK)
		}
	}
}

func TestDomainAgeText(t *testing.T) {
	t.Parallel()

	age := func(days int) *int { return &days }
	tests := []struct {
		age  *int
		want string
	}{
		{nil, "Unknown"},
		{age(800), "2 years"},
		{age(366), "1 years"},
		{age(90), "3 months"},
		{age(20), "20 days"},
		{age(0), "0 days"},
	}

	for _, tc := range tests {
		if got := domainAgeText(tc.age); got != tc.want {
			t.Errorf("domainAgeText(%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}
