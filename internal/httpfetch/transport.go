package httpfetch

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// newProxyTransport routes all requests through proxyURL using standard TLS.
// uTLS cannot negotiate CONNECT tunnels, so proxied requests give up the
// browser fingerprint.
func newProxyTransport(proxyURL *url.URL, timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy:       http.ProxyURL(proxyURL),
		DialContext: (&net.Dialer{Timeout: timeout}).DialContext,
	}
}

// newPlainTransport is the direct transport for plain-HTTP targets.
func newPlainTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{Timeout: timeout}).DialContext,
	}
}

// utlsConn wraps a utls.UConn and satisfies net.Conn plus the
// ConnectionState interface that net/http2 needs.
type utlsConn struct {
	*utls.UConn
}

func (c *utlsConn) ConnectionState() tls.ConnectionState {
	cs := c.UConn.ConnectionState()
	return tls.ConnectionState{
		Version:                    cs.Version,
		HandshakeComplete:          cs.HandshakeComplete,
		CipherSuite:                cs.CipherSuite,
		NegotiatedProtocol:         cs.NegotiatedProtocol,
		NegotiatedProtocolIsMutual: cs.NegotiatedProtocolIsMutual,
		ServerName:                 cs.ServerName,
		PeerCertificates:           cs.PeerCertificates,
		VerifiedChains:             cs.VerifiedChains,
		OCSPResponse:               cs.OCSPResponse,
		TLSUnique:                  cs.TLSUnique,
	}
}

// impersonatingTransport presents a real browser's TLS fingerprint via uTLS
// and routes to HTTP/1.1 or HTTP/2 based on ALPN negotiation.
type impersonatingTransport struct {
	dialer  *net.Dialer
	h1      *http.Transport
	h2      *http2.Transport
	timeout time.Duration
}

func newImpersonatingTransport(timeout time.Duration) *impersonatingTransport {
	dialer := &net.Dialer{Timeout: timeout}
	return &impersonatingTransport{
		dialer: dialer,
		h1: &http.Transport{
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: timeout,
		},
		h2:      &http2.Transport{},
		timeout: timeout,
	}
}

func (it *impersonatingTransport) dialUTLS(ctx context.Context, network, addr string) (net.Conn, string, error) {
	conn, err := it.dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, "", err
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, "", err
	}

	alpn := tlsConn.ConnectionState().NegotiatedProtocol
	return &utlsConn{tlsConn}, alpn, nil
}

func (it *impersonatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return it.h1.RoundTrip(req)
	}

	addr := req.URL.Host
	if !hasPort(addr) {
		addr = addr + ":443"
	}

	conn, alpn, err := it.dialUTLS(req.Context(), "tcp", addr)
	if err != nil {
		return nil, err
	}

	if alpn == "h2" {
		h2conn, err := it.h2.NewClientConn(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return h2conn.RoundTrip(req)
	}

	// For HTTP/1.1, inject the TLS conn into a one-shot transport. The
	// configured timeout still bounds the header wait even when the
	// caller's context has no deadline.
	transport := &http.Transport{
		ResponseHeaderTimeout: it.timeout,
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return conn, nil
		},
	}
	return transport.RoundTrip(req)
}

func hasPort(host string) bool {
	_, _, err := net.SplitHostPort(host)
	return err == nil
}
