package runtime

import (
	"context"
	"strings"

	"github.com/fluux-io/fluux-agent/llm"
	"github.com/fluux-io/fluux-agent/skill"
)

// maxRounds bounds the agentic tool-use loop (spec §4.4). After the budget
// is exhausted a final call with no tools forces a text-only answer so the
// loop always terminates.
const maxRounds = 10

// runAgenticLoop drives turns through the LLM, executing any requested
// tools and feeding their results back, until the model stops calling
// tools or the round budget is exhausted.
func (a *Agent) runAgenticLoop(ctx context.Context, system string, turns []llm.Turn, ec skill.ExecContext) (string, error) {
	tools := a.skills.ToolDefinitions()

	var finalText string
	for round := 0; round < maxRounds; round++ {
		resp, err := a.llmClient.Complete(ctx, system, turns, tools)
		if err != nil {
			return "", err
		}

		finalText = collectText(resp.Content)
		turns = append(turns, llm.NewAssistantTurn(resp.Content))

		for _, block := range resp.Content {
			tu, ok := block.(llm.ToolUse)
			if !ok {
				continue
			}
			result := a.skills.Execute(ctx, ec, tu.Name, tu.Input)
			turns = append(turns, llm.NewToolResultTurn(tu.ID, result))
		}

		if resp.StopReason != llm.StopToolUse {
			return finalText, nil
		}
	}

	resp, err := a.llmClient.Complete(ctx, system, turns, nil)
	if err != nil {
		return finalText, err
	}
	return collectText(resp.Content), nil
}

func collectText(blocks []llm.ContentBlock) string {
	var parts []string
	for _, b := range blocks {
		if t, ok := b.(llm.Text); ok {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n")
}
