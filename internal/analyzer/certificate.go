package analyzer

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"math"
	"net"
	"strings"
	"time"

	"github.com/fraudshield/fraudshield-cli/internal/shared/constants"
)

// Soon-to-expire certificates are penalized below this many remaining days.
const certExpiryWarningDays = 30

// fingerprintLength truncates the SHA-256 colon-hex fingerprint for display.
const fingerprintLength = 23

// CertificateCheck opens a TLS connection to the hostname on the HTTPS port
// and inspects the served certificate. Chain validation is skipped during the
// handshake and performed manually afterwards, so an invalid certificate can
// still be reported instead of aborting the probe.
type CertificateCheck struct {
	Timeout time.Duration
	Port    string
	// Now is overridable for expiry-window tests.
	Now func() time.Time
}

// NewCertificateCheck returns a CertificateCheck probing the standard HTTPS port.
func NewCertificateCheck(timeout time.Duration) *CertificateCheck {
	return &CertificateCheck{
		Timeout: timeout,
		Port:    constants.HTTPSPort,
		Now:     time.Now,
	}
}

// Check connects, inspects the peer certificate and scores it: 20 for a
// trusted unexpired certificate with 30+ days left, 15 when trusted but
// expiring sooner, 8 for untrusted but unexpired, 0 for expired or absent.
func (c *CertificateCheck) Check(ctx context.Context, hostname string) SSLResult {
	dialCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: c.Timeout},
		Config: &tls.Config{
			ServerName: hostname,
			// Validation happens manually below so invalid chains still get inspected.
			InsecureSkipVerify: true, // #nosec G402
		},
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(hostname, c.Port))
	if err != nil {
		if isTimeoutError(err) {
			return SSLResult{Status: SSLStatusTimeout, Error: "Connection timed out"}
		}
		return SSLResult{Status: SSLStatusError, Error: err.Error()}
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return SSLResult{Status: SSLStatusNoCertificate}
	}

	cert := state.PeerCertificates[0]
	authorized := verifyChain(hostname, state.PeerCertificates)

	now := c.Now()
	daysUntilExpiry := wholeDaysBetween(now, cert.NotAfter)
	isExpired := daysUntilExpiry < 0

	score := 0
	switch {
	case authorized && !isExpired && daysUntilExpiry < certExpiryWarningDays:
		score = 15
	case authorized && !isExpired:
		score = 20
	case !authorized && !isExpired:
		score = 8
	}

	status := SSLStatusInvalid
	if authorized {
		status = SSLStatusValid
	}

	return SSLResult{
		Status:          status,
		Valid:           authorized,
		Issuer:          issuerName(cert),
		Subject:         subjectName(cert, hostname),
		ValidFrom:       cert.NotBefore.UTC().Format(time.RFC3339),
		ValidTo:         cert.NotAfter.UTC().Format(time.RFC3339),
		DaysUntilExpiry: daysUntilExpiry,
		IsExpired:       isExpired,
		Protocol:        tls.VersionName(state.Version),
		SerialNumber:    strings.ToUpper(cert.SerialNumber.Text(16)),
		Fingerprint:     fingerprint(cert),
		Score:           score,
	}
}

// verifyChain performs the validation the handshake skipped: leaf against
// system roots with the served intermediates, bound to the hostname.
func verifyChain(hostname string, peers []*x509.Certificate) bool {
	intermediates := x509.NewCertPool()
	for _, cert := range peers[1:] {
		intermediates.AddCert(cert)
	}
	_, err := peers[0].Verify(x509.VerifyOptions{
		DNSName:       hostname,
		Intermediates: intermediates,
	})
	return err == nil
}

// wholeDaysBetween floors toward negative infinity so a certificate that
// expired within the last day still counts as expired.
func wholeDaysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

func issuerName(cert *x509.Certificate) string {
	if len(cert.Issuer.Organization) > 0 {
		return cert.Issuer.Organization[0]
	}
	if cert.Issuer.CommonName != "" {
		return cert.Issuer.CommonName
	}
	return "Unknown"
}

func subjectName(cert *x509.Certificate, hostname string) string {
	if cert.Subject.CommonName != "" {
		return cert.Subject.CommonName
	}
	return hostname
}

// fingerprint renders the truncated SHA-256 fingerprint as colon-separated
// uppercase hex pairs.
func fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	pairs := make([]string, len(sum))
	for i, b := range sum {
		pairs[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	joined := strings.Join(pairs, ":")
	if len(joined) > fingerprintLength {
		return joined[:fingerprintLength]
	}
	return joined
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
