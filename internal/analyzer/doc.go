// Package analyzer computes a composite risk score and verdict for a URL by
// fanning out to six independently failing checks: DNS resolution, TLS
// certificate inspection, Safe Browsing blocklists, VirusTotal multi-engine
// scans, WHOIS registration age, and security response headers.
//
// Every check converts its own failures (timeouts, missing credentials,
// provider errors) into a typed fallback result instead of an error, biased
// toward benefit of the doubt so infrastructure flakiness never reads as
// evidence of danger. Three conditions override the numeric score outright:
// a blocklist match, more than three flagging scan engines, or a failed DNS
// resolution each force a dangerous verdict.
package analyzer
