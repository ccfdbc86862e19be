package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"
)

// Status texts recorded for transport failures.
const (
	StatusSSLError   = "SSL Error"
	StatusTimeout    = "Timeout"
	StatusDNSError   = "DNS Error"
	StatusError      = "Error"
	StatusInvalidURL = "Invalid URL"
	StatusSlow       = "Slow"

	invalidURLMessage = "Invalid URL format"
)

// ClassifyError buckets a transport error. Typed errors are checked first;
// the message is then matched against known substrings. TLS problems win
// over timeouts, which win over DNS failures.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	if isTLSError(err) {
		return StatusSSLError
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return StatusTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return StatusDNSError
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "ssl", "tls", "x509", "certificate"):
		return StatusSSLError
	case containsAny(msg, "timeout", "timed out", "timed_out"):
		return StatusTimeout
	case containsAny(msg, "resolve", "dns", "no such host"):
		return StatusDNSError
	default:
		return StatusError
	}
}

func isTLSError(err error) bool {
	var (
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
