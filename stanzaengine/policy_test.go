package stanzaengine

import (
	"testing"

	"github.com/fluux-io/fluux-agent/jid"
)

func TestPolicyAdmitDirect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		localDomain    string
		allowedDomains []string
		allowedJIDs    []string
		from           string
		want           bool
	}{
		{"local domain no allow list admits local", "example.com", nil, nil, "alice@example.com", true},
		{"local domain no allow list rejects foreign", "example.com", nil, nil, "alice@other.com", false},
		{"wildcard domain admits anything", "example.com", []string{"*"}, nil, "alice@other.com", true},
		{"explicit domain admits", "example.com", []string{"other.com"}, nil, "alice@other.com", true},
		{"jid allow list restricts", "example.com", nil, []string{"bob@example.com"}, "alice@example.com", false},
		{"jid allow list admits listed", "example.com", nil, []string{"bob@example.com"}, "bob@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPolicy(tt.localDomain, tt.allowedDomains, tt.allowedJIDs)
			from := jid.MustParse(tt.from)
			if got := p.AdmitDirect(from.Bare()); got != tt.want {
				t.Errorf("AdmitDirect(%s) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestPolicyAdmitGroup(t *testing.T) {
	t.Parallel()
	p := NewPolicy("example.com", nil, nil)
	rooms := []jid.JID{jid.MustParse("room@conference.example.com")}

	admitted := p.AdmitGroup(rooms, jid.MustParse("room@conference.example.com/alice"))
	if !admitted {
		t.Error("expected configured room to be admitted")
	}

	notAdmitted := p.AdmitGroup(rooms, jid.MustParse("other@conference.example.com/alice"))
	if notAdmitted {
		t.Error("expected unconfigured room to be rejected")
	}
}
