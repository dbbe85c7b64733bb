package llm

import (
	"testing"

	"github.com/fluux-io/fluux-agent/workspace"
)

func TestTurnsFromTranscriptPreservesRoleAndContent(t *testing.T) {
	t.Parallel()
	transcript := []workspace.TranscriptRecord{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
	}
	turns := TurnsFromTranscript(transcript)
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Text != "hello" {
		t.Errorf("turns[0] = %+v", turns[0])
	}
	if turns[1].Role != "assistant" || turns[1].Text != "hi there" {
		t.Errorf("turns[1] = %+v", turns[1])
	}
}

func TestTurnConstructors(t *testing.T) {
	t.Parallel()

	u := NewUserTurn("hi")
	if u.Role != "user" || u.Text != "hi" {
		t.Errorf("NewUserTurn = %+v", u)
	}

	blocks := []ContentBlock{Text{Content: "thinking"}, ToolUse{ID: "t1", Name: "web_search", Input: map[string]any{"query": "go"}}}
	a := NewAssistantTurn(blocks)
	if a.Role != "assistant" || len(a.Blocks) != 2 {
		t.Errorf("NewAssistantTurn = %+v", a)
	}

	tr := NewToolResultTurn("t1", "no results found")
	if tr.Role != "tool" || tr.ToolUseID != "t1" || tr.Text != "no results found" {
		t.Errorf("NewToolResultTurn = %+v", tr)
	}
}

func TestContentBlockMarkers(t *testing.T) {
	t.Parallel()
	var blocks []ContentBlock
	blocks = append(blocks, Text{Content: "a"})
	blocks = append(blocks, ToolUse{ID: "1", Name: "n"})
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d", len(blocks))
	}
	if _, ok := blocks[0].(Text); !ok {
		t.Error("blocks[0] is not Text")
	}
	if _, ok := blocks[1].(ToolUse); !ok {
		t.Error("blocks[1] is not ToolUse")
	}
}

func TestMarshalInputEmptyRaw(t *testing.T) {
	t.Parallel()
	got, err := marshalInput(nil)
	if err != nil {
		t.Fatalf("marshalInput: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}

func TestMarshalInputDecodesObject(t *testing.T) {
	t.Parallel()
	got, err := marshalInput([]byte(`{"query":"golang","n":3}`))
	if err != nil {
		t.Fatalf("marshalInput: %v", err)
	}
	if got["query"] != "golang" {
		t.Errorf("query = %v, want golang", got["query"])
	}
}

func TestToStopReasonMapping(t *testing.T) {
	t.Parallel()
	cases := map[string]StopReason{
		"end_turn":      StopEndTurn,
		"stop_sequence": StopEndTurn,
		"tool_use":      StopToolUse,
		"max_tokens":    StopMaxTokens,
		"something_new": StopOther,
	}
	for in, want := range cases {
		if got := toStopReason(in); got != want {
			t.Errorf("toStopReason(%q) = %q, want %q", in, got, want)
		}
	}
}
