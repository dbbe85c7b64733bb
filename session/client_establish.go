package session

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"time"

	"github.com/fluux-io/fluux-agent/dial"
	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/sasl"
	"github.com/fluux-io/fluux-agent/stanza"
	"github.com/fluux-io/fluux-agent/stream"
	"github.com/fluux-io/fluux-agent/transport"
)

// Client drives the C2S establisher: stream open, STARTTLS, SASL, resource
// bind, and initial presence (spec §4.2's Client connection mode).
type Client struct {
	mu       sync.Mutex
	addr     jid.JID
	password string
	session  *Session
	dialer   *dial.Dialer
	opts     clientOptions
}

type clientOptions struct {
	resource          string
	tlsConfig         *tls.Config
	keepaliveInterval time.Duration
	readTimeout       time.Duration
}

// ClientOption configures a Client.
type ClientOption interface {
	apply(*clientOptions)
}

type clientOptionFunc func(*clientOptions)

func (f clientOptionFunc) apply(o *clientOptions) { f(o) }

// WithResource requests a specific resource at bind time. Empty asks the
// server to assign one.
func WithResource(resource string) ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.resource = resource })
}

// WithTLSConfig overrides the TLS configuration used for STARTTLS.
func WithTLSConfig(cfg *tls.Config) ClientOption {
	return clientOptionFunc(func(o *clientOptions) { o.tlsConfig = cfg })
}

// WithKeepalive overrides the whitespace-ping interval and read timeout.
func WithKeepalive(interval, timeout time.Duration) ClientOption {
	return clientOptionFunc(func(o *clientOptions) {
		o.keepaliveInterval = interval
		o.readTimeout = timeout
	})
}

// NewClient creates a new XMPP client for the given JID and password.
func NewClient(addr jid.JID, password string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		addr:     addr,
		password: password,
		dialer:   dial.NewDialer(),
	}
	for _, opt := range opts {
		opt.apply(&c.opts)
	}
	return c, nil
}

// Connect dials the server (resolving `_xmpp-client._tcp` SRV records
// before falling back to `domain:5222`), negotiates STARTTLS, SASL, and
// resource binding, and sends initial presence.
func (c *Client) Connect(ctx context.Context) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	trans, err := c.dialer.Dial(ctx, c.addr.Domain())
	if err != nil {
		return err
	}
	kept := transport.NewKeepalive(trans, c.opts.keepaliveInterval, c.opts.readTimeout)

	sess, err := NewSession(ctx, kept, WithLocalAddr(c.addr))
	if err != nil {
		kept.Close()
		return err
	}
	defer func() {
		if err != nil {
			sess.Close()
		}
	}()

	domain := c.addr.Domain()
	if _, err = openStream(sess, stream.Header{To: jid.MustParse(domain)}); err != nil {
		return err
	}
	feats, err := readFeatures(sess)
	if err != nil {
		return err
	}

	if feats.offersStartTLS() && sess.State()&StateSecure == 0 {
		tlsCfg := c.opts.tlsConfig
		if tlsCfg == nil {
			tlsCfg = &tls.Config{ServerName: domain}
		}
		if err = negotiateStartTLS(sess, tlsCfg); err != nil {
			return err
		}
		if _, err = openStream(sess, stream.Header{To: jid.MustParse(domain)}); err != nil {
			return err
		}
		if feats, err = readFeatures(sess); err != nil {
			return err
		}
	}

	if err = negotiateSASL(sess, feats.saslMechanisms(), sasl.Credentials{
		Username: c.addr.Local(),
		Password: c.password,
	}); err != nil {
		return err
	}

	if _, err = openStream(sess, stream.Header{To: jid.MustParse(domain)}); err != nil {
		return err
	}
	if feats, err = readFeatures(sess); err != nil {
		return err
	}
	if !feats.offersBind() {
		return errors.New("session: server did not offer resource binding")
	}

	bound, err := negotiateBind(sess, c.opts.resource)
	if err != nil {
		return err
	}
	sess.SetLocalAddr(bound)
	sess.SetRemoteAddr(jid.MustParse(domain))

	if err = sess.Send(ctx, stanza.NewPresence(stanza.PresenceAvailable)); err != nil {
		return err
	}

	c.session = sess
	return nil
}

// Send sends a stanza through the established session.
func (c *Client) Send(ctx context.Context, st stanza.Stanza) error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()

	if s == nil {
		return errors.New("session: not connected")
	}
	return s.Send(ctx, st)
}

// Session returns the underlying session, or nil before Connect succeeds.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Close closes the client connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

// JID returns the client's configured JID (the bare JID used to connect,
// not necessarily the bound full JID — see Session().LocalAddr() for that).
func (c *Client) JID() jid.JID {
	return c.addr
}
