package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/llm"
	"github.com/fluux-io/fluux-agent/skill"
	"github.com/fluux-io/fluux-agent/stanza"
	"github.com/fluux-io/fluux-agent/stanzaengine"
	"github.com/fluux-io/fluux-agent/workspace"
)

// Sender is the outbound capability the runtime needs from a live
// connection. session.Session satisfies this interface structurally.
type Sender interface {
	Send(ctx context.Context, st stanza.Stanza) error
}

// Config bundles everything an Agent needs to turn inbound events into
// replies.
type Config struct {
	Workspace     *workspace.Workspace
	Skills        *skill.Registry
	LLM           llm.Client
	Model         string
	ConnMode      string
	BoundJID      jid.JID
	IdleTimeout   time.Duration
	HistoryBudget int
	HTTPClient    *http.Client
	Log           zerolog.Logger
}

// Agent consumes stanzaengine.InboundEvent values, intercepts slash
// commands, and drives the agentic tool-use loop for everything else.
type Agent struct {
	ws            *workspace.Workspace
	skills        *skill.Registry
	llmClient     llm.Client
	model         string
	connMode      string
	boundJID      jid.JID
	idleTimeout   time.Duration
	historyBudget int
	httpClient    *http.Client
	startedAt     time.Time
	log           zerolog.Logger
}

// New builds an Agent from cfg, stamping its uptime clock at construction
// time.
func New(cfg Config) *Agent {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Agent{
		ws:            cfg.Workspace,
		skills:        cfg.Skills,
		llmClient:     cfg.LLM,
		model:         cfg.Model,
		connMode:      cfg.ConnMode,
		boundJID:      cfg.BoundJID,
		idleTimeout:   cfg.IdleTimeout,
		historyBudget: cfg.HistoryBudget,
		httpClient:    httpClient,
		startedAt:     time.Now(),
		log:           cfg.Log,
	}
}

// Handle dispatches one inbound event, sending zero or more outbound
// stanzas through sender as a side effect.
func (a *Agent) Handle(ctx context.Context, ev stanzaengine.InboundEvent, sender Sender) error {
	switch v := ev.(type) {
	case stanzaengine.DirectMessage:
		return a.handleDirect(ctx, sender, v)
	case stanzaengine.GroupMessage:
		return a.handleGroup(ctx, sender, v)
	case stanzaengine.SubscriptionRequest:
		return sender.Send(ctx, stanzaengine.BuildPresenceSubscribed(v.FromBare))
	default:
		// ChatStateOnly, PresenceEvent, IqRequest: nothing for the
		// conversational layer to do with these.
		return nil
	}
}

func (a *Agent) handleDirect(ctx context.Context, sender Sender, ev stanzaengine.DirectMessage) error {
	p, err := a.ws.Peer(ev.FromBare)
	if err != nil {
		return fmt.Errorf("runtime: open peer workspace: %w", err)
	}
	return a.converse(ctx, sender, p, ev.FromBare, stanza.MessageChat, ev.ID, ev.Body,
		ev.FromBare.String(), false, ev.Attachments, ev.Reaction)
}

func (a *Agent) handleGroup(ctx context.Context, sender Sender, ev stanzaengine.GroupMessage) error {
	p, err := a.ws.Peer(ev.RoomBare)
	if err != nil {
		return fmt.Errorf("runtime: open peer workspace: %w", err)
	}
	senderLabel := ev.SenderNick + "@" + ev.RoomBare.String()

	if !ev.IsMention {
		return a.storeOnly(p, ev.ID, ev.Body, senderLabel, ev.Attachments, ev.Reaction)
	}
	return a.converse(ctx, sender, p, ev.RoomBare, stanza.MessageGroupchat, ev.ID, ev.Body,
		senderLabel, true, ev.Attachments, ev.Reaction)
}

// storeOnly records a non-mention groupchat message in history without
// triggering an LLM turn (spec §4.3 edge case: room chatter is kept for
// context but never answered unprompted).
func (a *Agent) storeOnly(p *workspace.Peer, msgID, body, senderLabel string, atts []stanzaengine.Attachment, reaction *stanzaengine.Reaction) error {
	p.Lock()
	defer p.Unlock()

	now := time.Now()
	if err := p.EnsureFresh(a.idleTimeout, now); err != nil {
		return fmt.Errorf("runtime: ensure fresh session: %w", err)
	}

	refs := a.downloadAttachments(context.Background(), p, atts)
	msg := workspace.NewUserMessage(body, msgID, senderLabel, now, refs, reactionRef(reaction))
	if err := p.AppendMessage(msg); err != nil {
		return fmt.Errorf("runtime: append message: %w", err)
	}
	return nil
}

// converse runs the full conversational pipeline for one inbound message:
// slash-command interception, chat-state framing, the agentic loop, and
// history persistence.
func (a *Agent) converse(ctx context.Context, sender Sender, p *workspace.Peer, to jid.JID, msgType, msgID, body, senderLabel string, isGroup bool, atts []stanzaengine.Attachment, reaction *stanzaengine.Reaction) error {
	p.Lock()
	defer p.Unlock()

	now := time.Now()
	if err := p.EnsureFresh(a.idleTimeout, now); err != nil {
		return fmt.Errorf("runtime: ensure fresh session: %w", err)
	}

	refs := a.downloadAttachments(ctx, p, atts)
	userMsg := workspace.NewUserMessage(body, msgID, senderLabel, now, refs, reactionRef(reaction))
	if err := p.AppendMessage(userMsg); err != nil {
		return fmt.Errorf("runtime: append user message: %w", err)
	}

	if reply, ok := a.runSlashCommand(p, body); ok {
		out := stanzaengine.BuildMessage(to, reply, msgType)
		if err := p.AppendMessage(workspace.NewAssistantMessage(reply, out.ID, time.Now())); err != nil {
			return fmt.Errorf("runtime: append assistant message: %w", err)
		}
		return sender.Send(ctx, out)
	}

	if err := sender.Send(ctx, stanzaengine.BuildChatState(to, stanza.ChatStateComposing, msgType)); err != nil {
		return fmt.Errorf("runtime: send composing state: %w", err)
	}

	history, err := p.ReadTail(a.historyBudget)
	if err != nil {
		return fmt.Errorf("runtime: read history: %w", err)
	}
	turns := llm.TurnsFromTranscript(workspace.BuildTranscript(history, isGroup))
	system := p.SystemPrompt(now)
	ec := skill.ExecContext{Peer: p}

	reply, err := a.runAgenticLoop(ctx, system, turns, ec)
	if err != nil {
		a.log.Error().Err(err).Str("peer", p.BareJID().String()).Msg("llm completion failed")
		if sendErr := sender.Send(ctx, stanzaengine.BuildChatState(to, stanza.ChatStatePaused, msgType)); sendErr != nil {
			return sendErr
		}
		return sender.Send(ctx, stanzaengine.BuildMessage(to, fmt.Sprintf("(LLM error: %v)", err), msgType))
	}

	out := stanzaengine.BuildMessage(to, reply, msgType)
	if err := p.AppendMessage(workspace.NewAssistantMessage(reply, out.ID, time.Now())); err != nil {
		return fmt.Errorf("runtime: append assistant message: %w", err)
	}
	return sender.Send(ctx, out)
}
