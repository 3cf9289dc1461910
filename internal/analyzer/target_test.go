package analyzer

import (
	"errors"
	"testing"

	sharederrors "github.com/fraudshield/fraudshield-cli/internal/shared/errors"
)

func TestNormalizeTargetDefaultsScheme(t *testing.T) {
	t.Parallel()

	bare, err := NormalizeTarget("example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	explicit, err := NormalizeTarget("https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bare != explicit {
		t.Fatalf("expected identical targets, got %+v vs %+v", bare, explicit)
	}
	if bare.Hostname != "example.com" {
		t.Fatalf("expected hostname example.com, got %s", bare.Hostname)
	}
	if bare.URL != "https://example.com" {
		t.Fatalf("expected https scheme to be defaulted, got %s", bare.URL)
	}
}

func TestNormalizeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantURL  string
		wantHost string
		wantErr  error
	}{
		{name: "http preserved", input: "http://example.com/login", wantURL: "http://example.com/login", wantHost: "example.com"},
		{name: "mixed case scheme and host", input: "HTTPS://Example.com", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "whitespace trimmed", input: "  example.com/path  ", wantURL: "https://example.com/path", wantHost: "example.com"},
		{name: "port kept out of hostname", input: "example.com:8443/admin", wantURL: "https://example.com:8443/admin", wantHost: "example.com"},
		{name: "empty", input: "   ", wantErr: sharederrors.ErrMissingURL},
		{name: "no host", input: "https://", wantErr: sharederrors.ErrInvalidURL},
		{name: "garbage", input: "http://[::1", wantErr: sharederrors.ErrInvalidURL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target, err := NormalizeTarget(tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.URL != tc.wantURL {
				t.Errorf("URL: expected %s, got %s", tc.wantURL, target.URL)
			}
			if target.Hostname != tc.wantHost {
				t.Errorf("hostname: expected %s, got %s", tc.wantHost, target.Hostname)
			}
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hostname string
		want     string
	}{
		{"example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"a.b.c.example.com", "example.com"},
		{"localhost", "localhost"},
	}

	for _, tc := range tests {
		if got := RegistrableDomain(tc.hostname); got != tc.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tc.hostname, got, tc.want)
		}
	}
}
