package skill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const memoryStoreSchema = `{"type":"object","properties":{"note":{"type":"string","description":"the fact or note to remember about this peer"}},"required":["note"]}`

// MemoryStore appends a note to a peer's memory.md, making it available to
// future system-prompt assembly (spec §4.4).
type MemoryStore struct{}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (MemoryStore) Name() string        { return "memory_store" }
func (MemoryStore) Description() string { return "Store a durable note about the current conversation partner for future sessions." }
func (MemoryStore) ParametersSchema() json.RawMessage { return json.RawMessage(memoryStoreSchema) }
func (MemoryStore) RequiredCapabilities() []string     { return []string{"filesystem:workspace"} }

func (MemoryStore) Execute(_ context.Context, ec ExecContext, params map[string]any) (string, error) {
	if ec.Peer == nil {
		return "", errors.New("no active peer workspace")
	}
	note, _ := params["note"].(string)
	note = strings.TrimSpace(note)
	if note == "" {
		return "", errors.New("note must not be empty")
	}

	// The caller holds the peer's lock for the whole conversational turn.
	f, err := os.OpenFile(ec.Peer.MemoryPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open memory.md: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(note + "\n"); err != nil {
		return "", fmt.Errorf("write memory.md: %w", err)
	}
	return "stored", nil
}

const memoryRecallSchema = `{"type":"object","properties":{},"required":[]}`

// MemoryRecall returns the full contents of a peer's memory.md.
type MemoryRecall struct{}

func NewMemoryRecall() *MemoryRecall { return &MemoryRecall{} }

func (MemoryRecall) Name() string        { return "memory_recall" }
func (MemoryRecall) Description() string { return "Recall previously stored notes about the current conversation partner." }
func (MemoryRecall) ParametersSchema() json.RawMessage { return json.RawMessage(memoryRecallSchema) }
func (MemoryRecall) RequiredCapabilities() []string     { return []string{"filesystem:workspace"} }

func (MemoryRecall) Execute(_ context.Context, ec ExecContext, _ map[string]any) (string, error) {
	if ec.Peer == nil {
		return "", errors.New("no active peer workspace")
	}

	// The caller holds the peer's lock for the whole conversational turn.
	data, err := os.ReadFile(ec.Peer.MemoryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "no stored memory", nil
		}
		return "", fmt.Errorf("read memory.md: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "no stored memory", nil
	}
	return trimmed, nil
}
