package stanza

import (
	"encoding/xml"

	"github.com/fluux-io/fluux-agent/internal/ns"
)

// Presence type constants.
const (
	PresenceAvailable    = ""
	PresenceUnavailable  = "unavailable"
	PresenceSubscribe    = "subscribe"
	PresenceSubscribed   = "subscribed"
	PresenceUnsubscribe  = "unsubscribe"
	PresenceUnsubscribed = "unsubscribed"
	PresenceProbe        = "probe"
	PresenceError        = "error"
)

// Show values for presence.
const (
	ShowAway = "away"
	ShowChat = "chat"
	ShowDND  = "dnd"
	ShowXA   = "xa"
)

// MUCJoin is the `<x xmlns="http://jabber.org/protocol/muc"/>` extension
// that turns a presence stanza into a room join request.
type MUCJoin struct {
	XMLName xml.Name `xml:"http://jabber.org/protocol/muc x"`
}

// MUCUser is the `<x xmlns="...#user"/>` extension a MUC service attaches to
// presence broadcasts, carrying status codes such as 110 (self-presence) and
// 409 (nickname conflict, surfaced via an accompanying error presence).
type MUCUser struct {
	XMLName xml.Name `xml:"http://jabber.org/protocol/muc#user x"`
	Status  []struct {
		Code int `xml:"code,attr"`
	} `xml:"status"`
}

// Presence represents an XMPP presence stanza.
type Presence struct {
	Header
	XMLName    xml.Name    `xml:"presence"`
	Show       string      `xml:"show,omitempty"`
	Status     string      `xml:"status,omitempty"`
	Priority   int8        `xml:"priority,omitempty"`
	Error      *StanzaError `xml:"error,omitempty"`
	MUCJoin    *MUCJoin    `xml:"http://jabber.org/protocol/muc x,omitempty"`
	MUCUser    *MUCUser    `xml:"http://jabber.org/protocol/muc#user x,omitempty"`
	Extensions []Extension `xml:",any,omitempty"`
}

// NewPresence creates a new Presence with the given type.
func NewPresence(typ string) *Presence {
	return &Presence{
		Header: Header{
			XMLName: xml.Name{Space: ns.Client, Local: "presence"},
			ID:      GenerateID(),
			Type:    typ,
		},
	}
}

// StanzaType returns "presence".
func (p *Presence) StanzaType() string {
	return "presence"
}
