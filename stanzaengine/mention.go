package stanzaengine

import (
	"regexp"
	"strings"
)

// IsMention reports whether body addresses the given nick, per the rules a
// groupchat participant would expect: a leading "{nick}:" or "@{nick}", a
// mid-message " @{nick}" or " {nick}:", or a standalone whole-word
// occurrence of the nick. Matching is case-insensitive. Additional literal
// patterns (e.g. a nickname alias) are checked the same way.
func IsMention(body, nick string, patterns []string) bool {
	if nick == "" {
		return false
	}
	candidates := append([]string{nick}, patterns...)
	lower := strings.ToLower(body)
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if mentionMatches(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

func mentionMatches(lowerBody, lowerNick string) bool {
	if strings.HasPrefix(lowerBody, lowerNick+":") || strings.HasPrefix(lowerBody, "@"+lowerNick) {
		return true
	}
	if strings.Contains(lowerBody, " @"+lowerNick) || strings.Contains(lowerBody, " "+lowerNick+":") {
		return true
	}
	word := regexp.MustCompile(`\b` + regexp.QuoteMeta(lowerNick) + `\b`)
	return word.MatchString(lowerBody)
}
