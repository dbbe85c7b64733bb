package stanzaengine

import (
	"strings"

	"github.com/fluux-io/fluux-agent/jid"
)

// Policy decides whether a direct message, subscription request, or group
// message is admitted, per spec §6's cross-domain and allow-list rules.
type Policy struct {
	localDomain    string
	allowedDomains []string
	allowedJIDs    map[string]struct{}
}

// NewPolicy builds a Policy for the given local domain. An empty
// allowedDomains means only the local domain passes; a single "*" entry
// admits every domain. allowedJIDs holds bare JIDs; an empty list means the
// domain check alone governs admission.
func NewPolicy(localDomain string, allowedDomains, allowedJIDs []string) *Policy {
	jids := make(map[string]struct{}, len(allowedJIDs))
	for _, j := range allowedJIDs {
		jids[strings.ToLower(j)] = struct{}{}
	}
	return &Policy{
		localDomain:    strings.ToLower(localDomain),
		allowedDomains: allowedDomains,
		allowedJIDs:    jids,
	}
}

// domainAllowed reports whether the given domain passes the configured
// domain allow list.
func (p *Policy) domainAllowed(domain string) bool {
	domain = strings.ToLower(domain)
	if len(p.allowedDomains) == 0 {
		return domain == p.localDomain
	}
	for _, d := range p.allowedDomains {
		if d == "*" {
			return true
		}
		if strings.ToLower(d) == domain {
			return true
		}
	}
	return false
}

// jidAllowed reports whether the bare JID passes the allow-list, treating
// an empty allow-list as "no further restriction beyond the domain check".
func (p *Policy) jidAllowed(bare jid.JID) bool {
	if len(p.allowedJIDs) == 0 {
		return true
	}
	_, ok := p.allowedJIDs[strings.ToLower(bare.String())]
	return ok
}

// AdmitDirect reports whether a direct (type=chat) message or subscription
// request from the given bare JID is admitted: the domain must pass the
// domain allow list AND the bare JID must be in allowedJIDs (or the list
// must be empty).
func (p *Policy) AdmitDirect(bare jid.JID) bool {
	return p.domainAllowed(bare.Domain()) && p.jidAllowed(bare)
}

// AdmitGroup reports whether a groupchat message from the given room is
// admitted: any configured room is accepted.
func (p *Policy) AdmitGroup(rooms []jid.JID, room jid.JID) bool {
	for _, r := range rooms {
		if r.Bare().Equal(room.Bare()) {
			return true
		}
	}
	return false
}
