package runtime

import (
	"github.com/fluux-io/fluux-agent/stanzaengine"
	"github.com/fluux-io/fluux-agent/workspace"
)

// reactionRef converts an inbound stanzaengine.Reaction into the shape
// stored on a workspace.Message entry.
func reactionRef(r *stanzaengine.Reaction) *workspace.ReactionRef {
	if r == nil {
		return nil
	}
	return &workspace.ReactionRef{MessageID: r.TargetID, Emojis: r.Emojis}
}
