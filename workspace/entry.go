package workspace

import "time"

// entryType discriminates the JSON object on each history.jsonl line.
const (
	entryTypeSession = "session"
	entryTypeMessage = "message"
)

const headerVersion = 1

// Header is the mandatory first line of every history.jsonl file.
type Header struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Created string `json:"created"`
	JID     string `json:"jid"`
}

// NewHeader builds a session header for the given bare JID, stamped with
// the given time in ISO-8601.
func NewHeader(bareJID string, created time.Time) Header {
	return Header{
		Type:    entryTypeSession,
		Version: headerVersion,
		Created: created.UTC().Format(time.RFC3339),
		JID:     bareJID,
	}
}

// AttachmentRef is a compact reference to a downloaded attachment, as
// recorded in a Message entry.
type AttachmentRef struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// ReactionRef records an inbound reaction on a Message entry.
type ReactionRef struct {
	MessageID string   `json:"message_id"`
	Emojis    []string `json:"emojis"`
}

// Message is one stored conversational turn. Role is "user" or "assistant".
// Reaction entries carry an empty Content and a non-nil Reaction.
type Message struct {
	Type        string          `json:"type"`
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	MsgID       string          `json:"msg_id,omitempty"`
	Sender      string          `json:"sender,omitempty"`
	Timestamp   string          `json:"ts,omitempty"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`
	Reaction    *ReactionRef    `json:"reaction,omitempty"`
}

// NewUserMessage builds a user-role entry for an inbound message.
func NewUserMessage(content, msgID, sender string, ts time.Time, attachments []AttachmentRef, reaction *ReactionRef) Message {
	return Message{
		Type:        entryTypeMessage,
		Role:        "user",
		Content:     content,
		MsgID:       msgID,
		Sender:      sender,
		Timestamp:   ts.UTC().Format(time.RFC3339),
		Attachments: attachments,
		Reaction:    reaction,
	}
}

// NewAssistantMessage builds an assistant-role entry for an outbound reply.
func NewAssistantMessage(content, msgID string, ts time.Time) Message {
	return Message{
		Type:      entryTypeMessage,
		Role:      "assistant",
		Content:   content,
		MsgID:     msgID,
		Timestamp: ts.UTC().Format(time.RFC3339),
	}
}
