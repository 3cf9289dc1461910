package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fraudshield/fraudshield-cli/internal/shared/constants"
)

// Config wires the analyzer. Credentials are read once at startup and passed
// in here; checks never touch the environment themselves.
type Config struct {
	SafeBrowsingKey string
	VirusTotalKey   string
	WhoisKey        string
	// CheckTimeout bounds each probe; zero means constants.DefaultCheckTimeout.
	CheckTimeout time.Duration
	Logger       *zap.Logger
}

// Analyzer fans a normalized target out to the six checks and folds their
// results into a scored report.
type Analyzer struct {
	dns          *DNSCheck
	certificate  *CertificateCheck
	safeBrowsing *SafeBrowsingCheck
	virusTotal   *VirusTotalCheck
	whois        *WhoisCheck
	headers      *HeadersCheck
	logger       *zap.Logger
}

// New builds an Analyzer from the given configuration.
func New(cfg Config) *Analyzer {
	timeout := cfg.CheckTimeout
	if timeout <= 0 {
		timeout = constants.DefaultCheckTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		dns:          NewDNSCheck(timeout),
		certificate:  NewCertificateCheck(timeout),
		safeBrowsing: NewSafeBrowsingCheck(cfg.SafeBrowsingKey, timeout),
		virusTotal:   NewVirusTotalCheck(cfg.VirusTotalKey, timeout),
		whois:        NewWhoisCheck(cfg.WhoisKey, timeout),
		headers:      NewHeadersCheck(timeout),
		logger:       logger,
	}
}

// Analyze normalizes the raw URL and runs all six checks concurrently. Each
// check enforces its own timeout and converts every failure into its
// documented fallback result, so the batch always completes with six results
// regardless of how many probes fail. Only malformed input returns an error.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*Report, error) {
	target, err := NormalizeTarget(rawURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := &Report{
		URL:      target.URL,
		Hostname: target.Hostname,
		ScanDate: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	run := func(task func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task()
		}()
	}

	// Each goroutine owns exactly one report slot; no shared mutable state.
	run(func() {
		report.Checks.DNS = a.runDNS(ctx, target.Hostname)
	})
	run(func() {
		report.Checks.SSL = a.runCertificate(ctx, target.Hostname)
	})
	run(func() {
		report.Checks.SafeBrowsing = a.runSafeBrowsing(ctx, target.URL)
	})
	run(func() {
		report.Checks.VirusTotal = a.runVirusTotal(ctx, target.URL)
	})
	run(func() {
		report.Checks.Whois = a.runWhois(ctx, target.Hostname)
	})
	run(func() {
		report.Checks.Headers = a.runHeaders(ctx, target.URL)
	})
	wg.Wait()

	report.OverallScore = computeScore(report.Checks)
	report.Verdict = verdictFor(report.OverallScore, report.Checks)

	a.logger.Info("analysis_complete",
		zap.String("hostname", target.Hostname),
		zap.Int("score", report.OverallScore),
		zap.String("verdict", string(report.Verdict)),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// The run* wrappers convert a panicking check into its fallback result so no
// single probe can take the batch down.

func (a *Analyzer) runDNS(ctx context.Context, hostname string) (result DNSResult) {
	defer a.recoverCheck("dns", func(err string) {
		result = DNSResult{Status: DNSStatusFailed, AllIPs: []string{}, IPv6: []string{}, MX: []string{}, NS: []string{}, TXT: []string{}, Error: err}
	})
	return a.dns.Check(ctx, hostname)
}

func (a *Analyzer) runCertificate(ctx context.Context, hostname string) (result SSLResult) {
	defer a.recoverCheck("ssl", func(err string) {
		result = SSLResult{Status: SSLStatusError, Error: err}
	})
	return a.certificate.Check(ctx, hostname)
}

func (a *Analyzer) runSafeBrowsing(ctx context.Context, targetURL string) (result SafeBrowsingResult) {
	defer a.recoverCheck("safe_browsing", func(err string) {
		result = SafeBrowsingResult{Status: ReputationStatusError, Safe: true, Threats: []ThreatMatch{}, Score: 25, Error: err}
	})
	return a.safeBrowsing.Check(ctx, targetURL)
}

func (a *Analyzer) runVirusTotal(ctx context.Context, targetURL string) (result VirusTotalResult) {
	defer a.recoverCheck("virus_total", func(err string) {
		result = VirusTotalResult{Status: ReputationStatusError, Safe: true, Score: 20, Error: err}
	})
	return a.virusTotal.Check(ctx, targetURL)
}

func (a *Analyzer) runWhois(ctx context.Context, hostname string) (result WhoisResult) {
	defer a.recoverCheck("whois", func(err string) {
		result = WhoisResult{Status: ReputationStatusError, Score: 5, Error: err}
	})
	return a.whois.Check(ctx, hostname)
}

func (a *Analyzer) runHeaders(ctx context.Context, targetURL string) (result HeadersResult) {
	defer a.recoverCheck("headers", func(err string) {
		result = HeadersResult{Status: ReputationStatusError, SecurityHeaders: map[string]HeaderPresence{}, TotalCount: len(securityHeaderLabels), Score: 5, Error: err}
	})
	return a.headers.Check(ctx, targetURL)
}

func (a *Analyzer) recoverCheck(name string, fallback func(err string)) {
	if r := recover(); r != nil {
		a.logger.Error("check_panic", zap.String("check", name), zap.Any("panic", r))
		fallback(fmt.Sprintf("check panic: %v", r))
	}
}
