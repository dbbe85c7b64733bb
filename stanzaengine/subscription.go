package stanzaengine

import "github.com/fluux-io/fluux-agent/jid"

// PendingSubscriptions returns the subset of allowedJIDs the bridge has not
// yet subscribed to, in the order given. Called once after bind to drive
// the startup half of the presence subscription state machine (spec §4.3
// point 6): the runtime sends a subscribe request to each result.
func PendingSubscriptions(allowedJIDs []jid.JID, alreadySubscribed map[string]bool) []jid.JID {
	var pending []jid.JID
	for _, j := range allowedJIDs {
		if !alreadySubscribed[j.Bare().String()] {
			pending = append(pending, j)
		}
	}
	return pending
}
