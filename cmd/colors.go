package cmd

import (
	"github.com/fatih/color"

	"github.com/fraudshield/fraudshield-cli/internal/analyzer"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatVerdict(verdict analyzer.Verdict) string {
	switch verdict {
	case analyzer.VerdictSafe:
		return colorSuccess(string(verdict))
	case analyzer.VerdictSuspicious:
		return colorWarn(string(verdict))
	case analyzer.VerdictDangerous:
		return colorError(string(verdict))
	default:
		return string(verdict)
	}
}

func formatCheckStatus(status string) string {
	switch status {
	case analyzer.DNSStatusResolved, analyzer.SSLStatusValid, analyzer.ReputationStatusChecked:
		return colorSuccess(status)
	case analyzer.DNSStatusFailed, analyzer.SSLStatusError, analyzer.SSLStatusInvalid:
		return colorError(status)
	case analyzer.ReputationStatusSkipped, analyzer.ReputationStatusRateLimited, analyzer.DNSStatusNoRecords, analyzer.SSLStatusTimeout:
		return colorWarn(status)
	default:
		return status
	}
}
