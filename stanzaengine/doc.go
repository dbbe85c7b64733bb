// Package stanzaengine is the protocol brain sitting between a session and
// the agent runtime: outbound builders that produce ready-to-send stanzas,
// an inbound pipeline that turns raw stanzas into typed conversational
// events, MUC mention detection, cross-domain/allow-list admission policy,
// and the reconnection backoff calculator.
package stanzaengine
