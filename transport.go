package wireparse

import (
	"crypto/tls"
	"errors"

	"github.com/wireparse/wireparse/transport"
)

var (
	ErrBadCertificate = errors.New("one or more passed certificates are empty")
	ErrNoCertificates = errors.New("no certificates were passed")
)

// Cert loads a certificate pair, returning a zero-value tls.Certificate on
// failure. Combine several with MultiCertTLS to serve more than one
// hostname off a single listener; any loading error surfaces there.
func Cert(cert, key string) tls.Certificate {
	c, _ := tls.LoadX509KeyPair(cert, key)
	return c
}

// MultiCertTLS builds a TLS transport serving any of certs, chosen by SNI.
func MultiCertTLS(certs ...tls.Certificate) (*transport.TLS, error) {
	switch {
	case len(certs) == 0:
		return nil, ErrNoCertificates
	case !noEmptyCerts(certs):
		return nil, ErrBadCertificate
	}

	return transport.NewTLS(certs), nil
}

func noEmptyCerts(certs []tls.Certificate) bool {
	for _, c := range certs {
		if c.Certificate == nil {
			return false
		}
	}

	return true
}
