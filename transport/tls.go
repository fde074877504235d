package transport

import (
	"crypto/tls"
	"net"
)

type TLS struct {
	certs       []tls.Certificate
	getCert     func(*tls.ClientHelloInfo) (*tls.Certificate, error)
	TCP
}

func NewTLS(certs []tls.Certificate) *TLS {
	return &TLS{certs: certs}
}

// NewAutoTLS returns a TLS transport that resolves its certificate per
// handshake instead of from a fixed list, for autocert-style provisioning.
func NewAutoTLS(getCert func(*tls.ClientHelloInfo) (*tls.Certificate, error)) *TLS {
	return &TLS{getCert: getCert}
}

func (t *TLS) Bind(addr string) error {
	tcp, err := bindTCP(addr)
	if err != nil {
		return err
	}

	cfg := &tls.Config{Certificates: t.certs}
	if t.getCert != nil {
		cfg.GetCertificate = t.getCert
	}

	l := tls.NewListener(tcp, cfg)
	t.TCP = newTCP(tlsAdapter{tcp, l})

	return nil
}

type tlsAdapter struct {
	*net.TCPListener
	tls net.Listener
}

func (t tlsAdapter) Accept() (net.Conn, error) {
	return t.tls.Accept()
}
