// Package session implements the client-to-server XMPP session lifecycle
// the bridge depends on: stream negotiation (STARTTLS, SASL, resource
// binding), the Jabber Component Protocol (XEP-0114) as an alternative
// uplink, and a mux-based stanza dispatcher for the stream's read loop.
//
// Two establishers build a ready-to-use Session:
//
//   - Client: connects as a regular XMPP account, resolving SRV records,
//     upgrading to TLS, authenticating via SASL, and binding a resource.
//   - Component: connects as an external component (XEP-0114), authenticating
//     with a shared-secret SHA-1 handshake instead of SASL.
//
// Once established, inbound stanzas are routed through a Mux matching on
// XML name and stanza type, with a Chain of Middleware (logging, panic
// recovery) wrapping the final Handler.
//
// Basic client usage:
//
//	client, err := session.NewClient(jid.MustParse("user@example.com"), "password")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Connect(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package session
