package stanzaengine

import (
	"strings"

	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/stanza"
)

// Pipeline turns raw inbound stanzas into typed InboundEvents, applying the
// cross-domain/allow-list policy, MUC reflection filtering, and mention
// detection along the way.
type Pipeline struct {
	policy *Policy
	rooms  map[string]Room
}

// NewPipeline builds a Pipeline bound to the given policy and the set of
// rooms the bridge has joined.
func NewPipeline(policy *Policy, rooms []Room) *Pipeline {
	m := make(map[string]Room, len(rooms))
	for _, r := range rooms {
		m[strings.ToLower(r.JID.Bare().String())] = r
	}
	return &Pipeline{policy: policy, rooms: m}
}

// roomFor looks up the configured Room for a bare MUC JID.
func (p *Pipeline) roomFor(bare jid.JID) (Room, bool) {
	r, ok := p.rooms[strings.ToLower(bare.String())]
	return r, ok
}

// Finalize implements the finalize_message pipeline (spec §4.3). It returns
// ok=false for stanzas that are silently dropped (errors, policy failures,
// MUC reflection); otherwise it returns a typed InboundEvent, which may be
// a ChatStateOnly event the caller must still suppress from the LLM.
func (p *Pipeline) Finalize(st stanza.Stanza) (InboundEvent, bool) {
	switch v := st.(type) {
	case *stanza.Message:
		return p.finalizeMessage(v)
	case *stanza.Presence:
		return p.finalizePresence(v)
	case *stanza.IQ:
		return p.finalizeIQ(v)
	default:
		return nil, false
	}
}

func (p *Pipeline) finalizeMessage(msg *stanza.Message) (InboundEvent, bool) {
	if msg.Type == stanza.MessageError {
		return nil, false
	}
	from := msg.From
	if from.IsZero() {
		return nil, false
	}

	body := strings.TrimSpace(msg.Body)
	var attachments []Attachment
	if msg.OOB != nil {
		if body == msg.OOB.URL {
			body = ""
		}
		attachments = []Attachment{{URL: msg.OOB.URL, Description: msg.OOB.Description}}
	}

	var reaction *Reaction
	if msg.Reactions != nil {
		reaction = &Reaction{TargetID: msg.Reactions.ID, Emojis: msg.Reactions.Reaction}
	}

	isEmpty := body == "" && reaction == nil && len(attachments) == 0

	if room, inRoom := p.roomFor(from.Bare()); inRoom {
		senderNick := from.Resource()
		if senderNick == room.Nick {
			return nil, false
		}
		if isEmpty {
			return ChatStateOnly{From: from}, true
		}
		return GroupMessage{
			ID:          msg.ID,
			RoomBare:    from.Bare(),
			SenderNick:  senderNick,
			Body:        body,
			Attachments: attachments,
			Reaction:    reaction,
			IsMention:   IsMention(body, room.Nick, room.MentionPatterns),
		}, true
	}

	if msg.Type == stanza.MessageGroupchat {
		return nil, false
	}

	bare := from.Bare()
	if !p.policy.AdmitDirect(bare) {
		return nil, false
	}
	if isEmpty {
		return ChatStateOnly{From: from}, true
	}
	return DirectMessage{
		ID:          msg.ID,
		FromFull:    from,
		FromBare:    bare,
		Body:        body,
		Attachments: attachments,
		Reaction:    reaction,
	}, true
}

func (p *Pipeline) finalizePresence(pres *stanza.Presence) (InboundEvent, bool) {
	from := pres.From
	if from.IsZero() {
		return nil, false
	}

	if pres.Type == stanza.PresenceSubscribe {
		bare := from.Bare()
		if !p.policy.AdmitDirect(bare) {
			return nil, false
		}
		return SubscriptionRequest{FromBare: bare}, true
	}

	kind := pres.Type
	if kind == stanza.PresenceAvailable {
		kind = "available"
	}
	return PresenceEvent{From: from, Kind: kind}, true
}

func (p *Pipeline) finalizeIQ(iq *stanza.IQ) (InboundEvent, bool) {
	if iq.Type != stanza.IQGet && iq.Type != stanza.IQSet {
		return nil, false
	}
	return IqRequest{
		ID:      iq.ID,
		From:    iq.From,
		Kind:    iq.Type,
		Payload: iq.Query,
	}, true
}
