package stanzaengine

import (
	"strconv"

	"github.com/fluux-io/fluux-agent/jid"
)

// Room is a configured MUC room the bridge joins on connect.
type Room struct {
	JID             jid.JID
	Nick            string
	MentionPatterns []string
}

// maxNickRetries bounds how many suffixed nicknames JoinNick hands out
// after 409 conflicts (spec §9 open question decision).
const maxNickRetries = 5

// JoinNick computes the nickname for a MUC join attempt after 409
// conflicts. attempt 0 is the original join and returns baseNick; attempt
// n >= 1 is the nth retry and returns baseNick suffixed with "_{n+1}". It
// reports false once attempt exceeds maxNickRetries, signaling the caller
// to give up.
func JoinNick(baseNick string, attempt int) (string, bool) {
	if attempt > maxNickRetries {
		return "", false
	}
	if attempt == 0 {
		return baseNick, true
	}
	return baseNick + "_" + strconv.Itoa(attempt+1), true
}
