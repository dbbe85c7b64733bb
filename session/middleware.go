package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fluux-io/fluux-agent/stanza"
)

// Middleware wraps a Handler to add cross-cutting behavior.
type Middleware func(Handler) Handler

// Chain applies a series of middleware to a handler.
func Chain(handler Handler, middleware ...Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

// LogMiddleware logs incoming stanzas at debug level.
func LogMiddleware(log zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, session *Session, st stanza.Stanza) error {
			header := st.GetHeader()
			log.Debug().
				Str("stanza", st.StanzaType()).
				Str("from", header.From.String()).
				Str("to", header.To.String()).
				Str("id", header.ID).
				Str("type", header.Type).
				Msg("inbound stanza")
			return next.HandleStanza(ctx, session, st)
		})
	}
}

// RecoverMiddleware recovers from panics in handlers, logging them at error
// level instead of crashing the session loop.
func RecoverMiddleware(log zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, session *Session, st stanza.Stanza) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("recovered from handler panic")
				}
			}()
			return next.HandleStanza(ctx, session, st)
		})
	}
}
