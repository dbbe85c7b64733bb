package workspace

import "encoding/json"

// TranscriptRecord is one message in the conversation transcript handed to
// an LLM: runtime-only fields (msg_id, ts) never appear here.
type TranscriptRecord struct {
	Role    string
	Content string
}

// metadataView is the compact structured-metadata blob appended to a
// transcript entry's content when it carries attachments or a reaction.
type metadataView struct {
	Attachments []AttachmentRef `json:"attachments,omitempty"`
	Reaction    *ReactionRef    `json:"reaction,omitempty"`
}

// BuildTranscript converts a slice of stored Message entries (as returned
// by ReadTail) into the transcript the runtime sends to an LLM. isGroup
// controls whether user entries get a "{sender}: " attribution prefix.
func BuildTranscript(entries []Message, isGroup bool) []TranscriptRecord {
	records := make([]TranscriptRecord, 0, len(entries))
	for _, e := range entries {
		content := e.Content
		if len(e.Attachments) > 0 || e.Reaction != nil {
			if meta, err := json.Marshal(metadataView{Attachments: e.Attachments, Reaction: e.Reaction}); err == nil {
				content = content + " " + string(meta)
			}
		}
		if e.Role == "user" && isGroup && e.Sender != "" {
			content = e.Sender + ": " + content
		}
		records = append(records, TranscriptRecord{Role: e.Role, Content: content})
	}
	return records
}
