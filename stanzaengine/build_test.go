package stanzaengine

import (
	"testing"

	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/stanza"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()
	to := jid.MustParse("user@example.com")
	msg := BuildMessage(to, "hello", stanza.MessageChat)

	if msg.To.String() != to.String() {
		t.Errorf("To = %q, want %q", msg.To.String(), to.String())
	}
	if msg.Body != "hello" {
		t.Errorf("Body = %q, want hello", msg.Body)
	}
	if msg.Type != stanza.MessageChat {
		t.Errorf("Type = %q, want %q", msg.Type, stanza.MessageChat)
	}
	state, ok := msg.ChatState()
	if !ok || state != stanza.ChatStateActive {
		t.Errorf("ChatState = %v, %v, want active, true", state, ok)
	}
	if msg.ID == "" {
		t.Error("expected non-empty id")
	}
}

func TestBuildChatState(t *testing.T) {
	t.Parallel()
	to := jid.MustParse("user@example.com")
	msg := BuildChatState(to, stanza.ChatStateComposing, stanza.MessageChat)

	if msg.Body != "" {
		t.Errorf("Body = %q, want empty", msg.Body)
	}
	state, ok := msg.ChatState()
	if !ok || state != stanza.ChatStateComposing {
		t.Errorf("ChatState = %v, %v, want composing, true", state, ok)
	}
	if !msg.HintNoStore() {
		t.Error("expected no-store hint")
	}
}

func TestBuildMUCJoin(t *testing.T) {
	t.Parallel()
	room := jid.MustParse("room@conference.example.com")
	pres := BuildMUCJoin(room, "agent")

	wantTo := "room@conference.example.com/agent"
	if pres.To.String() != wantTo {
		t.Errorf("To = %q, want %q", pres.To.String(), wantTo)
	}
	if pres.MUCJoin == nil {
		t.Error("expected MUCJoin extension")
	}
}

func TestBuildPresenceSubscribeSubscribed(t *testing.T) {
	t.Parallel()
	to := jid.MustParse("user@example.com")

	sub := BuildPresenceSubscribe(to)
	if sub.Type != stanza.PresenceSubscribe {
		t.Errorf("Type = %q, want subscribe", sub.Type)
	}

	subd := BuildPresenceSubscribed(to)
	if subd.Type != stanza.PresenceSubscribed {
		t.Errorf("Type = %q, want subscribed", subd.Type)
	}
}
