package stanzaengine

import "github.com/fluux-io/fluux-agent/jid"

// InboundEvent is the sum type the finalize_message pipeline produces for
// each admitted stanza. Concrete types: DirectMessage, GroupMessage,
// PresenceEvent, SubscriptionRequest, IqRequest, and ChatStateOnly.
type InboundEvent interface {
	inboundEvent()
}

// Attachment is an out-of-band file reference carried alongside a message.
type Attachment struct {
	URL         string
	Description string
}

// Reaction is an inbound XEP-0444 reaction: the emojis applied and the id
// of the message being reacted to.
type Reaction struct {
	TargetID string
	Emojis   []string
}

// DirectMessage is an inbound 1:1 chat message admitted by policy.
type DirectMessage struct {
	ID          string
	FromFull    jid.JID
	FromBare    jid.JID
	Body        string
	Attachments []Attachment
	Reaction    *Reaction
}

func (DirectMessage) inboundEvent() {}

// GroupMessage is an inbound groupchat message from a joined room.
type GroupMessage struct {
	ID          string
	RoomBare    jid.JID
	SenderNick  string
	Body        string
	Attachments []Attachment
	Reaction    *Reaction
	IsMention   bool
}

func (GroupMessage) inboundEvent() {}

// PresenceEvent reports an available/unavailable transition from a peer.
type PresenceEvent struct {
	From jid.JID
	Kind string
}

func (PresenceEvent) inboundEvent() {}

// SubscriptionRequest is an inbound roster subscription request from a bare
// JID that passed the cross-domain/allow-list policy.
type SubscriptionRequest struct {
	FromBare jid.JID
}

func (SubscriptionRequest) inboundEvent() {}

// IqRequest is an inbound get or set IQ, passed through to the runtime.
// The core sends no reply to inbound IQs, ping included.
type IqRequest struct {
	ID      string
	From    jid.JID
	Kind    string
	Payload []byte
}

func (IqRequest) inboundEvent() {}

// ChatStateOnly marks a message stanza that carried no body, reaction, or
// OOB attachment -- a pure typing notification. It is surfaced so callers
// can suppress it explicitly; it must never trigger an LLM round.
type ChatStateOnly struct {
	From jid.JID
}

func (ChatStateOnly) inboundEvent() {}
