package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fluux-io/fluux-agent/skill"
)

// AnthropicClient adapts github.com/anthropics/anthropic-sdk-go to the
// Client contract. It speaks the provider's structured content blocks
// natively, so text and tool-use blocks round-trip without translation.
type AnthropicClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicClient builds an AnthropicClient for the given API key and
// model name (e.g. "claude-sonnet-4-20250514").
func NewAnthropicClient(apiKey, model string, maxTokens int64) *AnthropicClient {
	return &AnthropicClient{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
	}
}

func (a *AnthropicClient) Complete(ctx context.Context, system string, turns []Turn, tools []skill.ToolDefinition) (Response, error) {
	msgs, err := toAnthropicMessages(turns)
	if err != nil {
		return Response{}, fmt.Errorf("anthropic: %w", err)
	}
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(tools) > 0 {
		params.Tools = toAnthropicTools(tools)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("anthropic: %w", err)
	}

	var blocks []ContentBlock
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			blocks = append(blocks, Text{Content: variant.Text})
		case anthropic.ToolUseBlock:
			input, err := marshalInput(json.RawMessage(variant.Input))
			if err != nil {
				return Response{}, fmt.Errorf("anthropic: decode tool input: %w", err)
			}
			blocks = append(blocks, ToolUse{ID: variant.ID, Name: variant.Name, Input: input})
		}
	}

	return Response{Content: blocks, StopReason: toStopReason(string(msg.StopReason))}, nil
}

func toAnthropicMessages(turns []Turn) ([]anthropic.MessageParam, error) {
	msgs := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case "assistant":
			blocks, err := toAnthropicContentBlocks(t.Blocks)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, anthropic.NewAssistantMessage(blocks...))
		case "tool":
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewToolResultBlock(t.ToolUseID, t.Text, false)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		}
	}
	return msgs, nil
}

func toAnthropicContentBlocks(blocks []ContentBlock) ([]anthropic.ContentBlockParamUnion, error) {
	out := make([]anthropic.ContentBlockParamUnion, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case Text:
			out = append(out, anthropic.NewTextBlock(v.Content))
		case ToolUse:
			input, err := json.Marshal(v.Input)
			if err != nil {
				return nil, fmt.Errorf("encode tool input: %w", err)
			}
			out = append(out, anthropic.NewToolUseBlock(v.ID, json.RawMessage(input), v.Name))
		}
	}
	return out, nil
}

func toAnthropicTools(tools []skill.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var schema struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		}
		_ = json.Unmarshal(t.InputSchema, &schema)

		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: schema.Properties,
					Required:   schema.Required,
				},
			},
		})
	}
	return out
}

func toStopReason(s string) StopReason {
	switch s {
	case "end_turn", "stop_sequence":
		return StopEndTurn
	case "tool_use":
		return StopToolUse
	case "max_tokens":
		return StopMaxTokens
	default:
		return StopOther
	}
}
