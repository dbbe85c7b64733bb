package session

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/fluux-io/fluux-agent/internal/ns"
	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/stanza"
	"github.com/fluux-io/fluux-agent/stream"
	"github.com/fluux-io/fluux-agent/transport"
)

// Component implements the Jabber Component Protocol (XEP-0114): a
// plaintext subdomain uplink authenticated with a shared-secret SHA-1
// handshake, used when the bridge runs as an external component rather
// than a regular client.
type Component struct {
	mu                sync.Mutex
	domain            string
	secret            string
	session           *Session
	addr              string
	keepaliveInterval time.Duration
	readTimeout       time.Duration
}

// NewComponent creates a new XMPP component.
func NewComponent(domain, secret string, opts ...ComponentOption) (*Component, error) {
	c := &Component{
		domain: domain,
		secret: secret,
		addr:   "localhost:5275",
	}

	for _, opt := range opts {
		opt.apply(c)
	}

	return c, nil
}

// ComponentOption configures a Component.
type ComponentOption interface {
	apply(*Component)
}

type componentOptionFunc func(*Component)

func (f componentOptionFunc) apply(c *Component) { f(c) }

// WithComponentAddr sets the server address to connect to.
func WithComponentAddr(addr string) ComponentOption {
	return componentOptionFunc(func(c *Component) {
		c.addr = addr
	})
}

// WithComponentKeepalive overrides the whitespace-ping interval and read
// timeout for the component's uplink.
func WithComponentKeepalive(interval, timeout time.Duration) ComponentOption {
	return componentOptionFunc(func(c *Component) {
		c.keepaliveInterval = interval
		c.readTimeout = timeout
	})
}

// handshakeResult is the `<handshake/>` element a component sends (carrying
// the hex SHA-1 digest of stream ID plus secret, to authenticate) and
// receives (empty, to acknowledge success).
type handshakeResult struct {
	XMLName xml.Name `xml:"jabber:component:accept handshake"`
	Body    string   `xml:",chardata"`
}

// Connect dials the component port, opens the stream, and performs the
// SHA-1 handshake (spec §4.2's Component connection mode).
func (c *Component) Connect(ctx context.Context) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("component: dial: %w", err)
	}

	trans := transport.NewKeepalive(transport.NewTCP(conn), c.keepaliveInterval, c.readTimeout)
	domainJID, err := jid.New("", c.domain, "")
	if err != nil {
		trans.Close()
		return err
	}

	sess, err := NewSession(ctx, trans, WithLocalAddr(domainJID))
	if err != nil {
		trans.Close()
		return err
	}
	defer func() {
		if err != nil {
			sess.Close()
		}
	}()

	streamID, err := openStream(sess, stream.Header{To: domainJID, NS: ns.Component})
	if err != nil {
		return err
	}

	hash := c.Handshake(streamID)
	if err = sess.Writer().Encode(handshakeResult{Body: hash}); err != nil {
		return err
	}

	tok, err := sess.Reader().Token()
	if err != nil {
		return err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return errors.New("component: unexpected token awaiting handshake ack")
	}
	if se.Name.Local == "error" {
		_ = sess.Reader().Skip()
		return errors.New("component: server rejected handshake")
	}
	if se.Name.Local != "handshake" {
		return fmt.Errorf("component: unexpected element %q awaiting handshake ack", se.Name.Local)
	}
	_ = sess.Reader().Skip()

	sess.SetState(StateAuthenticated | StateReady)
	sess.SetRemoteAddr(domainJID)
	c.session = sess
	return nil
}

// Handshake generates the component handshake hash.
func (c *Component) Handshake(streamID string) string {
	h := sha1.New()
	h.Write([]byte(streamID + c.secret))
	return hex.EncodeToString(h.Sum(nil))
}

// Send sends a stanza via the component.
func (c *Component) Send(ctx context.Context, st stanza.Stanza) error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()

	if s == nil {
		return errors.New("component: not connected")
	}
	return s.Send(ctx, st)
}

// Session returns the underlying session.
func (c *Component) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Close closes the component connection.
func (c *Component) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

// Domain returns the component domain.
func (c *Component) Domain() string {
	return c.domain
}
