// Command fluuxagentd is the single-binary XMPP agent runtime: it connects
// as either an XEP-0114 component or an ordinary client, admits inbound
// messages through the stanza engine, and answers them with an LLM-backed
// runtime.Agent. There are no subcommands; all configuration comes from one
// TOML file.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fluux-io/fluux-agent/config"
	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/llm"
	"github.com/fluux-io/fluux-agent/runtime"
	"github.com/fluux-io/fluux-agent/sasl"
	"github.com/fluux-io/fluux-agent/session"
	"github.com/fluux-io/fluux-agent/skill"
	"github.com/fluux-io/fluux-agent/stanza"
	"github.com/fluux-io/fluux-agent/stanzaengine"
	"github.com/fluux-io/fluux-agent/workspace"
)

// shutdownFlush bounds how long the main loop waits for an in-flight
// stanza round-trip to finish once a shutdown signal arrives.
const shutdownFlush = 2 * time.Second

// maxAuthRetries bounds consecutive non-retryable authentication failures
// before the process gives up and exits nonzero (spec §6/§7).
const maxAuthRetries = 3

// establisher is the subset of session.Client / session.Component this
// binary needs: connect, send, and hand the live session to Serve.
type establisher interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, st stanza.Stanza) error
	Session() *session.Session
	Close() error
}

func main() {
	configPath := flag.String("config", "fluux-agent.toml", "path to the TOML configuration file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	os.Exit(run(cfg, log))
}

// run builds every long-lived component and drives the reconnect
// supervision loop until ctx is cancelled or a non-retryable failure
// occurs. It returns the process exit code.
func run(cfg *config.Config, log zerolog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws := workspace.New(cfg.WorkspaceDir)
	if err := ws.Init(); err != nil {
		log.Error().Err(err).Msg("failed to initialize workspace")
		return 1
	}

	registry, err := buildSkills(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to build skill registry")
		return 1
	}

	llmClient, err := buildLLMClient(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to build LLM client")
		return 1
	}

	boundJID, rooms, localDomain, err := resolveIdentity(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve bound identity")
		return 1
	}

	allowedJIDs, err := parseAllowedJIDs(cfg.Agent.AllowedJIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse agent.allowed_jids")
		return 1
	}

	policy := stanzaengine.NewPolicy(localDomain, cfg.Agent.AllowedDomains, cfg.Agent.AllowedJIDs)
	pipeline := stanzaengine.NewPipeline(policy, rooms)

	agent := runtime.New(runtime.Config{
		Workspace:     ws,
		Skills:        registry,
		LLM:           llmClient,
		Model:         cfg.LLM.Model,
		ConnMode:      cfg.Server.Mode,
		BoundJID:      boundJID,
		IdleTimeout:   cfg.IdleTimeout(),
		HistoryBudget: 40,
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
		Log:           log,
	})

	tracker := stanzaengine.NewTracker()
	authFailures := 0
	subscribed := make(map[string]bool)

	for {
		if ctx.Err() != nil {
			return 0
		}

		est, err := dial(cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to construct establisher")
			return 1
		}

		connErr := est.Connect(ctx)
		if connErr != nil {
			if isAuthFailure(connErr) {
				authFailures++
				log.Error().Err(connErr).Int("attempt", authFailures).Msg("authentication failed")
				if authFailures >= maxAuthRetries {
					return 1
				}
			} else {
				log.Warn().Err(connErr).Msg("connection attempt failed")
			}
			if !sleepOrDone(ctx, tracker.NextDelay()) {
				return 0
			}
			continue
		}
		authFailures = 0

		connectedAt := time.Now()
		tracker.MarkConnected(connectedAt)
		log.Info().Str("mode", cfg.Server.Mode).Str("jid", boundJID.String()).Msg("connected")

		joinRooms(ctx, est, rooms, log)
		subscribeAllowed(ctx, est, allowedJIDs, subscribed, log)

		serveErr := serveUntilDone(ctx, est, pipeline, agent, log)
		_ = est.Close()
		tracker.CheckStable(time.Now())

		if ctx.Err() != nil {
			return 0
		}
		if serveErr != nil {
			log.Warn().Err(serveErr).Msg("session ended, reconnecting")
		}
		if !sleepOrDone(ctx, tracker.NextDelay()) {
			return 0
		}
	}
}

// dial constructs a fresh, not-yet-connected establisher for the
// configured mode.
func dial(cfg *config.Config) (establisher, error) {
	switch cfg.Server.Mode {
	case config.ModeComponent:
		return session.NewComponent(cfg.Server.ComponentDomain, cfg.Server.ComponentSecret,
			session.WithComponentAddr(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)))
	case config.ModeClient:
		addr, err := jid.Parse(cfg.Server.JID)
		if err != nil {
			return nil, fmt.Errorf("server.jid: %w", err)
		}
		opts := []session.ClientOption{session.WithResource(cfg.Server.Resource)}
		if !cfg.Server.TLSVerify {
			opts = append(opts, session.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
		}
		return session.NewClient(addr, cfg.Server.Password, opts...)
	default:
		return nil, fmt.Errorf("unrecognized server.mode %q", cfg.Server.Mode)
	}
}

// resolveIdentity computes the bound JID, the local domain used for
// cross-domain admission, and the list of rooms to join.
func resolveIdentity(cfg *config.Config) (bound jid.JID, rooms []stanzaengine.Room, localDomain string, err error) {
	switch cfg.Server.Mode {
	case config.ModeComponent:
		bound, err = jid.New("", cfg.Server.ComponentDomain, "")
		localDomain = cfg.Server.ComponentDomain
	case config.ModeClient:
		bound, err = jid.Parse(cfg.Server.JID)
		if err == nil {
			localDomain = bound.Domain()
		}
	default:
		err = fmt.Errorf("unrecognized server.mode %q", cfg.Server.Mode)
	}
	if err != nil {
		return jid.JID{}, nil, "", err
	}

	rooms = make([]stanzaengine.Room, 0, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		roomJID, err := jid.Parse(r.JID)
		if err != nil {
			return jid.JID{}, nil, "", fmt.Errorf("rooms[]: %w", err)
		}
		rooms = append(rooms, stanzaengine.Room{
			JID:             roomJID,
			Nick:            r.Nick,
			MentionPatterns: r.MentionPatterns,
		})
	}
	return bound, rooms, localDomain, nil
}

// joinRooms sends a MUC presence join for every configured room. A failed
// join is logged and skipped; it does not abort the connection.
func joinRooms(ctx context.Context, est establisher, rooms []stanzaengine.Room, log zerolog.Logger) {
	for _, room := range rooms {
		join := stanzaengine.BuildMUCJoin(room.JID, room.Nick)
		if err := est.Send(ctx, join); err != nil {
			log.Warn().Err(err).Str("room", room.JID.String()).Msg("failed to join room")
		}
	}
}

// parseAllowedJIDs parses the operator's bare-JID allow list once at
// startup so the subscription loop doesn't re-parse it on every connect.
func parseAllowedJIDs(raw []string) ([]jid.JID, error) {
	jids := make([]jid.JID, 0, len(raw))
	for _, s := range raw {
		j, err := jid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("agent.allowed_jids: %w", err)
		}
		jids = append(jids, j)
	}
	return jids, nil
}

// subscribeAllowed drives the startup half of the presence-subscription
// state machine (spec §4.3 point 6): after a successful bind, send
// `subscribe` to every allowed JID not already subscribed. subscribed is
// shared across reconnects so a JID already sent to isn't re-sent on a
// later reconnect within the same process lifetime.
func subscribeAllowed(ctx context.Context, est establisher, allowedJIDs []jid.JID, subscribed map[string]bool, log zerolog.Logger) {
	for _, j := range stanzaengine.PendingSubscriptions(allowedJIDs, subscribed) {
		if err := est.Send(ctx, stanzaengine.BuildPresenceSubscribe(j)); err != nil {
			log.Warn().Err(err).Str("jid", j.String()).Msg("failed to send subscription request")
			continue
		}
		subscribed[j.Bare().String()] = true
	}
}

// serveUntilDone runs the session's stanza read loop, finalizing each
// admitted stanza through pipeline and dispatching it to agent. It returns
// when the underlying connection drops or ctx is cancelled.
func serveUntilDone(ctx context.Context, est establisher, pipeline *stanzaengine.Pipeline, agent *runtime.Agent, log zerolog.Logger) error {
	sess := est.Session()
	done := make(chan error, 1)
	go func() {
		done <- sess.Serve(session.HandlerFunc(func(ctx context.Context, _ *session.Session, st stanza.Stanza) error {
			ev, ok := pipeline.Finalize(st)
			if !ok {
				return nil
			}
			if err := agent.Handle(ctx, ev, est); err != nil {
				log.Warn().Err(err).Msg("failed to handle inbound event")
			}
			return nil
		}))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownFlush)
		defer cancel()
		select {
		case <-done:
		case <-shutdownCtx.Done():
		}
		return nil
	}
}

// buildSkills constructs the skill registry from the configured enabled
// list and capability allow list.
func buildSkills(cfg *config.Config) (*skill.Registry, error) {
	known := []skill.Skill{
		skill.NewMemoryStore(),
		skill.NewMemoryRecall(),
		skill.NewURLFetch(time.Duration(cfg.Skills.URLFetch.TimeoutSeconds) * time.Second),
		skill.NewWebSearch(skill.NewDuckDuckGoBackend(time.Duration(cfg.Skills.WebSearch.TimeoutSeconds) * time.Second)),
	}
	var allowedCapabilities []string
	if cfg.Agent.AllowedCapabilities != nil {
		allowedCapabilities = cfg.Agent.AllowedCapabilities
	}
	return skill.Build(known, cfg.Skills.Enabled, allowedCapabilities)
}

// buildLLMClient constructs the provider adapter selected by cfg.LLM.Provider.
func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens), nil
	case config.ProviderOllama:
		baseURL := cfg.LLM.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1/"
		}
		return llm.NewOpenAIClient(baseURL, cfg.LLM.APIKey, cfg.LLM.Model), nil
	default:
		return nil, fmt.Errorf("unrecognized llm.provider %q", cfg.LLM.Provider)
	}
}

// sleepOrDone waits for d or ctx cancellation, whichever comes first. It
// reports whether the wait completed normally (false means ctx was
// cancelled and the caller should stop).
func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// isAuthFailure reports whether err represents a credential problem rather
// than a transient transport failure, per spec §7's distinction between
// retryable and non-retryable authentication errors. The component
// handshake rejection isn't a sentinel error, so it's matched by message;
// everything else that fails to authenticate is treated as retryable
// (transport hiccups during negotiation look the same from here).
func isAuthFailure(err error) bool {
	return errors.Is(err, sasl.ErrAuthFailed) || strings.Contains(err.Error(), "rejected handshake")
}
