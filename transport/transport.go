// Package transport provides transport abstractions for XMPP connections:
// the raw framed byte stream, its STARTTLS upgrade, and the whitespace
// keepalive/read-timeout discipline layered on top of it.
package transport

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"time"
)

// Transport is the interface for XMPP connection transports.
type Transport interface {
	io.ReadWriteCloser

	// StartTLS upgrades the connection to TLS.
	StartTLS(config *tls.Config) error

	// ConnectionState returns the TLS connection state, if TLS is active.
	ConnectionState() (tls.ConnectionState, bool)

	// Peer returns the remote address.
	Peer() net.Addr

	// LocalAddress returns the local address.
	LocalAddress() net.Addr

	// SetReadDeadline arms a deadline for the next Read call, the
	// mechanism the keepalive wrapper uses to detect a dead peer.
	SetReadDeadline(t time.Time) error
}

// Errors a transport can fail with. All are fatal: the session must
// restart and reconnect.
var (
	ErrTLSHandshake  = errors.New("transport: TLS handshake failed")
	ErrKeepaliveLost = errors.New("transport: no inbound activity within read timeout")
)
