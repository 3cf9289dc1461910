package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fraudshield/fraudshield-cli/internal/analyzer"
	"github.com/fraudshield/fraudshield-cli/internal/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan [url]",
	Short: "Analyze one URL, or a batch of URLs from a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		file, _ := cmd.Flags().GetString("file")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		rateLimit, _ := cmd.Flags().GetInt("rate-limit")

		if file == "" && len(args) == 0 {
			return fmt.Errorf("provide a URL argument or --file with one URL per line")
		}
		if file != "" && len(args) > 0 {
			return fmt.Errorf("--file and a URL argument are mutually exclusive")
		}

		creds := config.LoadCredentials()
		a := analyzer.New(analyzer.Config{
			SafeBrowsingKey: creds.SafeBrowsingKey,
			VirusTotalKey:   creds.VirusTotalKey,
			WhoisKey:        creds.WhoisKey,
			CheckTimeout:    checkTimeout,
			Logger:          logger.Desugar(),
		})

		if file != "" {
			return runBatchScan(cmd.Context(), a, file, concurrency, rateLimit, jsonOutput)
		}
		return runSingleScan(cmd.Context(), a, args[0], jsonOutput)
	},
}

func init() {
	scanCmd.Flags().Bool("json", false, "Print the raw analysis report as JSON")
	scanCmd.Flags().String("file", "", "Scan every URL in this file (one per line)")
	scanCmd.Flags().Int("concurrency", 4, "Maximum concurrent analyses in batch mode")
	scanCmd.Flags().Int("rate-limit", 2, "Analyses started per second in batch mode")
}

func runSingleScan(ctx context.Context, a *analyzer.Analyzer, rawURL string, jsonOutput bool) error {
	report, err := a.Analyze(ctx, rawURL)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

func runBatchScan(ctx context.Context, a *analyzer.Analyzer, path string, concurrency, rateLimit int, jsonOutput bool) error {
	urls, err := readTargets(path)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", path)
	}

	bar := progressbar.Default(int64(len(urls)), "scanning")
	runner := &analyzer.Runner{Concurrency: concurrency, RateLimit: rateLimit}
	results := runner.Run(ctx, a, urls, func(analyzer.BatchResult) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	if jsonOutput {
		reports := make([]*analyzer.Report, 0, len(results))
		for _, res := range results {
			if res.Report != nil {
				reports = append(reports, res.Report)
			}
		}
		return printJSON(reports)
	}

	counts := map[analyzer.Verdict]int{}
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%s  %s (%v)\n", colorError("invalid"), res.URL, res.Err)
			continue
		}
		counts[res.Report.Verdict]++
		fmt.Printf("%-10s  %3d/100  %s\n",
			formatVerdict(res.Report.Verdict), res.Report.OverallScore, res.Report.URL)
	}
	fmt.Printf("\n%s safe=%d suspicious=%d dangerous=%d\n", colorInfo("summary:"),
		counts[analyzer.VerdictSafe], counts[analyzer.VerdictSuspicious], counts[analyzer.VerdictDangerous])
	return nil
}

func readTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

func printJSON(payload interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func printReport(report *analyzer.Report) {
	fmt.Printf("Target:   %s (%s)\n", report.URL, report.Hostname)
	fmt.Printf("Scanned:  %s\n", report.ScanDate.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("Verdict:  %s  (score %d/100)\n\n", formatVerdict(report.Verdict), report.OverallScore)

	c := report.Checks
	printCheckLine("dns", c.DNS.Status, c.DNS.Score, dnsDetail(c.DNS))
	printCheckLine("ssl", c.SSL.Status, c.SSL.Score, sslDetail(c.SSL))
	printCheckLine("safeBrowsing", c.SafeBrowsing.Status, c.SafeBrowsing.Score, safeBrowsingDetail(c.SafeBrowsing))
	printCheckLine("virusTotal", c.VirusTotal.Status, c.VirusTotal.Score, virusTotalDetail(c.VirusTotal))
	printCheckLine("whois", c.Whois.Status, c.Whois.Score, whoisDetail(c.Whois))
	printCheckLine("headers", c.Headers.Status, c.Headers.Score, headersDetail(c.Headers))
}

func printCheckLine(name, status string, score int, detail string) {
	fmt.Printf("  %-13s %-22s %3d  %s\n", name, formatCheckStatus(status), score, detail)
}

func dnsDetail(r analyzer.DNSResult) string {
	switch r.Status {
	case analyzer.DNSStatusResolved:
		return fmt.Sprintf("ip=%s (%d A, %d AAAA)", r.IP, len(r.AllIPs), len(r.IPv6))
	case analyzer.DNSStatusFailed:
		return r.Error
	default:
		return r.Message
	}
}

func sslDetail(r analyzer.SSLResult) string {
	if r.Error != "" {
		return r.Error
	}
	if r.Issuer == "" {
		return ""
	}
	if r.IsExpired {
		return fmt.Sprintf("issuer=%s expired %dd ago", r.Issuer, -r.DaysUntilExpiry)
	}
	return fmt.Sprintf("issuer=%s expires in %dd", r.Issuer, r.DaysUntilExpiry)
}

func safeBrowsingDetail(r analyzer.SafeBrowsingResult) string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("%d threat(s)", len(r.Threats))
}

func virusTotalDetail(r analyzer.VirusTotalResult) string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("%d/%d engines flagged", r.Positives, r.Total)
}

func whoisDetail(r analyzer.WhoisResult) string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("registrar=%s age=%s", r.Registrar, r.DomainAgeText)
}

func headersDetail(r analyzer.HeadersResult) string {
	if r.Error != "" {
		return r.Error
	}
	return fmt.Sprintf("%d/%d security headers, server=%s", r.PresentCount, r.TotalCount, r.Server)
}
