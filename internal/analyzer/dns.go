package analyzer

import (
	"context"
	"errors"
	"net"
	"time"
)

// DNSCheck resolves address, mail, nameserver and text records for a
// hostname. Individual record lookups fail independently; only a failure to
// resolve any address at all is treated as an error condition.
type DNSCheck struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

// NewDNSCheck returns a DNSCheck using the pure-Go resolver.
func NewDNSCheck(timeout time.Duration) *DNSCheck {
	return &DNSCheck{
		Resolver: &net.Resolver{PreferGo: true},
		Timeout:  timeout,
	}
}

// Check resolves the hostname. Status resolved (score 10) when any IPv4 or
// IPv6 address exists, no_records (2) when resolution succeeds empty, and
// failed (0) on resolver error — the report then distinguishes a
// nonexistent domain from other resolver failures.
func (d *DNSCheck) Check(ctx context.Context, hostname string) DNSResult {
	ipv4, err4 := d.lookupIPs(ctx, "ip4", hostname)
	ipv6, err6 := d.lookupIPs(ctx, "ip6", hostname)

	if len(ipv4) == 0 && len(ipv6) == 0 {
		result := DNSResult{
			AllIPs: []string{},
			IPv6:   []string{},
			MX:     []string{},
			NS:     []string{},
			TXT:    []string{},
		}
		if err4 != nil && err6 != nil {
			result.Status = DNSStatusFailed
			result.Error = classifyResolverError(err4)
			return result
		}
		result.Status = DNSStatusNoRecords
		result.Score = 2
		result.Message = "No DNS records found — domain may not exist"
		return result
	}

	result := DNSResult{
		Status: DNSStatusResolved,
		AllIPs: ipv4,
		IPv6:   ipv6,
		Score:  10,
	}
	if len(ipv4) > 0 {
		result.IP = ipv4[0]
	} else {
		result.IP = ipv6[0]
	}

	// Secondary records are informational; their failures are tolerated.
	result.MX = d.lookupMX(ctx, hostname)
	result.NS = d.lookupNS(ctx, hostname)
	result.TXT = d.lookupTXT(ctx, hostname)

	return result
}

func (d *DNSCheck) lookupIPs(ctx context.Context, network, hostname string) ([]string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	ips, err := d.Resolver.LookupIP(lookupCtx, network, hostname)
	if err != nil {
		return nil, err
	}
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}
	return addrs, nil
}

func (d *DNSCheck) lookupMX(ctx context.Context, hostname string) []string {
	lookupCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	records, err := d.Resolver.LookupMX(lookupCtx, hostname)
	if err != nil {
		return []string{}
	}
	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		hosts = append(hosts, mx.Host)
	}
	return hosts
}

func (d *DNSCheck) lookupNS(ctx context.Context, hostname string) []string {
	lookupCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	records, err := d.Resolver.LookupNS(lookupCtx, hostname)
	if err != nil {
		return []string{}
	}
	hosts := make([]string, 0, len(records))
	for _, ns := range records {
		hosts = append(hosts, ns.Host)
	}
	return hosts
}

func (d *DNSCheck) lookupTXT(ctx context.Context, hostname string) []string {
	lookupCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	records, err := d.Resolver.LookupTXT(lookupCtx, hostname)
	if err != nil {
		return []string{}
	}
	return records
}

// classifyResolverError maps a nonexistent domain to a stable message and
// passes other resolver errors through verbatim.
func classifyResolverError(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return "Domain does not exist"
	}
	return err.Error()
}
