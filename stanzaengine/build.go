package stanzaengine

import (
	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/stanza"
)

// BuildMessage constructs a chat or groupchat message carrying body, bundled
// with an Active chat-state annotation and a fresh UUIDv4 id. encoding/xml
// escapes element text and attribute values on the wire, so callers never
// need to pre-escape body themselves.
func BuildMessage(to jid.JID, body, typ string) *stanza.Message {
	msg := stanza.NewMessage(typ)
	msg.To = to
	msg.Body = body
	msg.AddChatState(stanza.ChatStateActive)
	return msg
}

// BuildChatState constructs a standalone chat-state notification (no body)
// marked with the XEP-0334 no-store hint, since typing indicators carry no
// conversational content worth archiving.
func BuildChatState(to jid.JID, state stanza.ChatState, typ string) *stanza.Message {
	msg := stanza.NewMessage(typ)
	msg.To = to
	msg.AddChatState(state)
	msg.AddHintNoStore()
	return msg
}

// BuildMUCJoin constructs the presence stanza that joins a MUC room under
// the given nickname: `to` is set to "{room}/{nick}" and an empty muc#x
// extension marks it as a join request.
func BuildMUCJoin(room jid.JID, nick string) *stanza.Presence {
	pres := stanza.NewPresence(stanza.PresenceAvailable)
	pres.To = room.WithResource(nick)
	pres.MUCJoin = &stanza.MUCJoin{}
	return pres
}

// BuildMUCLeave constructs the presence stanza that leaves a joined room.
func BuildMUCLeave(room jid.JID, nick string) *stanza.Presence {
	pres := stanza.NewPresence(stanza.PresenceUnavailable)
	pres.To = room.WithResource(nick)
	return pres
}

// BuildPresenceSubscribe constructs a subscription request.
func BuildPresenceSubscribe(to jid.JID) *stanza.Presence {
	pres := stanza.NewPresence(stanza.PresenceSubscribe)
	pres.To = to
	return pres
}

// BuildPresenceSubscribed constructs a subscription approval.
func BuildPresenceSubscribed(to jid.JID) *stanza.Presence {
	pres := stanza.NewPresence(stanza.PresenceSubscribed)
	pres.To = to
	return pres
}
