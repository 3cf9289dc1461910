package analyzer

// Verdict thresholds over the composite score.
const (
	dangerousBelow  = 50
	suspiciousBelow = 75
)

// Positives above this force a dangerous verdict regardless of score.
const positivesOverrideThreshold = 3

// computeScore folds five of the six sub-scores into the composite 0-100
// score. Weights: Safe Browsing 30, VirusTotal 25, SSL 20, Headers 15,
// WHOIS 10. DNS is excluded on purpose; its score is reported but only the
// resolution-failure override feeds the verdict.
func computeScore(c Checks) int {
	return c.SafeBrowsing.Score +
		c.VirusTotal.Score +
		c.SSL.Score +
		c.Headers.Score +
		c.Whois.Score
}

// verdictFor derives the verdict from the composite score, then applies the
// hard overrides. Overrides only ever escalate toward dangerous.
func verdictFor(score int, c Checks) Verdict {
	verdict := VerdictSafe
	if score < dangerousBelow {
		verdict = VerdictDangerous
	} else if score < suspiciousBelow {
		verdict = VerdictSuspicious
	}

	if len(c.SafeBrowsing.Threats) > 0 {
		verdict = VerdictDangerous
	}
	if c.VirusTotal.Positives > positivesOverrideThreshold {
		verdict = VerdictDangerous
	}
	if c.DNS.Status == DNSStatusFailed {
		verdict = VerdictDangerous
	}

	return verdict
}
