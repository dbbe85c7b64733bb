// Package ns defines the XML namespace constants the wire protocols named in
// the spec require (RFC 6120/6121 core streams, SASL, bind, and the XEPs
// the stanza engine implements).
package ns

const (
	// Core XMPP namespaces (RFC 6120)
	Client  = "jabber:client"
	Stream  = "http://etherx.jabber.org/streams"
	Streams = "urn:ietf:params:xml:ns:xmpp-streams"
	TLS     = "urn:ietf:params:xml:ns:xmpp-tls"
	SASL    = "urn:ietf:params:xml:ns:xmpp-sasl"
	Bind    = "urn:ietf:params:xml:ns:xmpp-bind"
	Stanzas = "urn:ietf:params:xml:ns:xmpp-stanzas"

	// Multi-User Chat (XEP-0045)
	MUC     = "http://jabber.org/protocol/muc"
	MUCUser = "http://jabber.org/protocol/muc#user"

	// Chat State Notifications (XEP-0085)
	ChatStates = "http://jabber.org/protocol/chatstates"

	// Message Reactions (XEP-0444)
	Reactions = "urn:xmpp:reactions:0"

	// Message Processing Hints (XEP-0334)
	Hints = "urn:xmpp:hints"

	// Out of Band Data (XEP-0066/0363)
	OOB  = "jabber:x:oob"
	OOB2 = "jabber:iq:oob"

	// Component Protocol (XEP-0114)
	Component = "jabber:component:accept"
)
