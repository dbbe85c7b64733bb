package stanzaengine

import (
	"testing"

	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/stanza"
)

func testPipeline() *Pipeline {
	policy := NewPolicy("example.com", nil, []string{"alice@example.com"})
	rooms := []Room{{JID: jid.MustParse("room@conference.example.com"), Nick: "agent"}}
	return NewPipeline(policy, rooms)
}

func TestFinalizeDirectMessage(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageChat)
	msg.From = jid.MustParse("alice@example.com/phone")
	msg.Body = "  hello there  "

	ev, ok := p.Finalize(msg)
	if !ok {
		t.Fatal("expected event to be admitted")
	}
	dm, ok := ev.(DirectMessage)
	if !ok {
		t.Fatalf("event = %T, want DirectMessage", ev)
	}
	if dm.Body != "hello there" {
		t.Errorf("Body = %q, want trimmed", dm.Body)
	}
	if dm.FromBare.String() != "alice@example.com" {
		t.Errorf("FromBare = %q", dm.FromBare.String())
	}
}

func TestFinalizeDropsErrorStanza(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageError)
	msg.From = jid.MustParse("alice@example.com")
	msg.Body = "won't matter"

	_, ok := p.Finalize(msg)
	if ok {
		t.Error("expected error-type message to be dropped")
	}
}

func TestFinalizeDropsDisallowedDomain(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageChat)
	msg.From = jid.MustParse("mallory@evil.example")
	msg.Body = "hi"

	_, ok := p.Finalize(msg)
	if ok {
		t.Error("expected disallowed domain to be dropped")
	}
}

func TestFinalizeDropsDisallowedJID(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageChat)
	msg.From = jid.MustParse("bob@example.com")
	msg.Body = "hi"

	_, ok := p.Finalize(msg)
	if ok {
		t.Error("expected jid not on allow list to be dropped")
	}
}

func TestFinalizeOOBFallbackStrip(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageChat)
	msg.From = jid.MustParse("alice@example.com")
	msg.Body = "https://example.com/cat.png"
	msg.OOB = &stanza.OOBData{URL: "https://example.com/cat.png"}

	ev, ok := p.Finalize(msg)
	if !ok {
		t.Fatal("expected event to be admitted")
	}
	dm := ev.(DirectMessage)
	if dm.Body != "" {
		t.Errorf("Body = %q, want blanked (fallback strip)", dm.Body)
	}
	if len(dm.Attachments) != 1 || dm.Attachments[0].URL != msg.OOB.URL {
		t.Errorf("Attachments = %v", dm.Attachments)
	}
}

func TestFinalizeChatStateOnly(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageChat)
	msg.From = jid.MustParse("alice@example.com")
	msg.AddChatState(stanza.ChatStateComposing)

	ev, ok := p.Finalize(msg)
	if !ok {
		t.Fatal("expected ChatStateOnly event, not a drop")
	}
	if _, isChatStateOnly := ev.(ChatStateOnly); !isChatStateOnly {
		t.Fatalf("event = %T, want ChatStateOnly", ev)
	}
}

func TestFinalizeGroupMessage(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageGroupchat)
	msg.From = jid.MustParse("room@conference.example.com/alice")
	msg.Body = "agent: can you help?"

	ev, ok := p.Finalize(msg)
	if !ok {
		t.Fatal("expected group message to be admitted")
	}
	gm, ok := ev.(GroupMessage)
	if !ok {
		t.Fatalf("event = %T, want GroupMessage", ev)
	}
	if gm.SenderNick != "alice" {
		t.Errorf("SenderNick = %q, want alice", gm.SenderNick)
	}
	if !gm.IsMention {
		t.Error("expected mention to be detected")
	}
}

func TestFinalizeDropsMUCReflection(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	msg := stanza.NewMessage(stanza.MessageGroupchat)
	msg.From = jid.MustParse("room@conference.example.com/agent")
	msg.Body = "echo of my own message"

	_, ok := p.Finalize(msg)
	if ok {
		t.Error("expected self-reflection to be dropped")
	}
}

func TestFinalizeSubscriptionRequest(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	pres := stanza.NewPresence(stanza.PresenceSubscribe)
	pres.From = jid.MustParse("alice@example.com")

	ev, ok := p.Finalize(pres)
	if !ok {
		t.Fatal("expected subscription request to be admitted")
	}
	sr, ok := ev.(SubscriptionRequest)
	if !ok {
		t.Fatalf("event = %T, want SubscriptionRequest", ev)
	}
	if sr.FromBare.String() != "alice@example.com" {
		t.Errorf("FromBare = %q", sr.FromBare.String())
	}
}

func TestFinalizeIQRequest(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	iq := stanza.NewIQ(stanza.IQGet)
	iq.From = jid.MustParse("alice@example.com")

	ev, ok := p.Finalize(iq)
	if !ok {
		t.Fatal("expected iq to pass through")
	}
	if _, ok := ev.(IqRequest); !ok {
		t.Fatalf("event = %T, want IqRequest", ev)
	}
}

func TestFinalizeDropsResultIQ(t *testing.T) {
	t.Parallel()
	p := testPipeline()

	iq := stanza.NewIQ(stanza.IQResult)
	iq.From = jid.MustParse("alice@example.com")

	_, ok := p.Finalize(iq)
	if ok {
		t.Error("expected result iq (our own bind/ping replies) to be dropped")
	}
}
