package stanza

import (
	"encoding/xml"

	"github.com/fluux-io/fluux-agent/internal/ns"
)

// Message type constants.
const (
	MessageChat      = "chat"
	MessageError     = "error"
	MessageGroupchat = "groupchat"
	MessageHeadline  = "headline"
	MessageNormal    = "normal"
)

// ChatState is a XEP-0085 typing-awareness annotation.
type ChatState string

const (
	ChatStateActive    ChatState = "active"
	ChatStateComposing ChatState = "composing"
	ChatStatePaused    ChatState = "paused"
	ChatStateInactive  ChatState = "inactive"
	ChatStateGone      ChatState = "gone"
)

// OOBData is a XEP-0066/0363 out-of-band file reference.
type OOBData struct {
	XMLName     xml.Name `xml:"jabber:x:oob x"`
	URL         string   `xml:"url"`
	Description string   `xml:"desc,omitempty"`
}

// Reactions is a XEP-0444 reaction container attached to a message. ID
// names the message being reacted to; Reaction holds the raw reaction glyphs.
type Reactions struct {
	XMLName  xml.Name `xml:"urn:xmpp:reactions:0 reactions"`
	ID       string   `xml:"id,attr"`
	Reaction []string `xml:"reaction"`
}

// Message represents an XMPP message stanza.
type Message struct {
	Header
	XMLName    xml.Name    `xml:"message"`
	Subject    string      `xml:"subject,omitempty"`
	Body       string      `xml:"body,omitempty"`
	Thread     string      `xml:"thread,omitempty"`
	Error      *StanzaError `xml:"error,omitempty"`
	OOB        *OOBData    `xml:"jabber:x:oob x,omitempty"`
	Reactions  *Reactions  `xml:"urn:xmpp:reactions:0 reactions,omitempty"`
	Extensions []Extension `xml:",any,omitempty"`
}

// NewMessage creates a new Message with the given type and a fresh UUIDv4 ID.
func NewMessage(typ string) *Message {
	return &Message{
		Header: Header{
			XMLName: xml.Name{Space: ns.Client, Local: "message"},
			ID:      GenerateID(),
			Type:    typ,
		},
	}
}

// StanzaType returns "message".
func (m *Message) StanzaType() string {
	return "message"
}

// ChatState inspects the message's extensions for the first element in the
// chat-states namespace and reports it, if any.
func (m *Message) ChatState() (ChatState, bool) {
	for _, ext := range m.Extensions {
		if ext.XMLName.Space == ns.ChatStates {
			return ChatState(ext.XMLName.Local), true
		}
	}
	return "", false
}

// HintNoStore reports whether the message carries the XEP-0334 `<no-store/>`
// processing hint.
func (m *Message) HintNoStore() bool {
	for _, ext := range m.Extensions {
		if ext.XMLName.Space == ns.Hints && ext.XMLName.Local == "no-store" {
			return true
		}
	}
	return false
}

// AddChatState appends a standalone chat-state element to the message's
// extension set.
func (m *Message) AddChatState(state ChatState) {
	m.Extensions = append(m.Extensions, Extension{
		XMLName: xml.Name{Space: ns.ChatStates, Local: string(state)},
	})
}

// AddHintNoStore appends the XEP-0334 `<no-store/>` processing hint.
func (m *Message) AddHintNoStore() {
	m.Extensions = append(m.Extensions, Extension{
		XMLName: xml.Name{Space: ns.Hints, Local: "no-store"},
	})
}
