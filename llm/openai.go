package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/fluux-io/fluux-agent/skill"
)

// OpenAIClient adapts github.com/openai/openai-go/v3 to the Client
// contract. It targets any OpenAI-compatible chat-completions endpoint,
// including a local Ollama server, so tool calls are translated to and
// from OpenAI-shaped {role:"tool", ...} records rather than native content
// blocks. Providers that omit a call ID on their tool calls (Ollama does)
// get one synthesized as tool_{index}.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient builds an OpenAIClient against baseURL (e.g.
// "http://localhost:11434/v1/" for Ollama) using apiKey as the bearer
// token -- Ollama ignores its value but the SDK requires one be set.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (o *OpenAIClient) Complete(ctx context.Context, system string, turns []Turn, tools []skill.ToolDefinition) (Response, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, toOpenAIMessages(turns)...)

	params := openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: messages,
	}
	if len(tools) > 0 {
		params.Tools = toOpenAITools(tools)
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Response{}, fmt.Errorf("openai: empty choices")
	}
	choice := completion.Choices[0]

	var blocks []ContentBlock
	if choice.Message.Content != "" {
		blocks = append(blocks, Text{Content: choice.Message.Content})
	}
	for i, call := range choice.Message.ToolCalls {
		input, err := marshalInput(json.RawMessage(call.Function.Arguments))
		if err != nil {
			return Response{}, fmt.Errorf("openai: decode tool input: %w", err)
		}
		id := call.ID
		if id == "" {
			id = fmt.Sprintf("tool_%d", i)
		}
		blocks = append(blocks, ToolUse{ID: id, Name: call.Function.Name, Input: input})
	}

	stopReason := StopEndTurn
	switch choice.FinishReason {
	case "tool_calls":
		stopReason = StopToolUse
	case "length":
		stopReason = StopMaxTokens
	case "stop":
		stopReason = StopEndTurn
	default:
		if len(choice.Message.ToolCalls) > 0 {
			stopReason = StopToolUse
		} else if choice.FinishReason != "" {
			stopReason = StopOther
		}
	}

	return Response{Content: blocks, StopReason: stopReason}, nil
}

func toOpenAIMessages(turns []Turn) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for i, t := range turns {
		switch t.Role {
		case "assistant":
			out = append(out, toOpenAIAssistantMessage(t.Blocks, i))
		case "tool":
			out = append(out, openai.ToolMessage(t.Text, t.ToolUseID))
		default:
			out = append(out, openai.UserMessage(t.Text))
		}
	}
	return out
}

func toOpenAIAssistantMessage(blocks []ContentBlock, index int) openai.ChatCompletionMessageParamUnion {
	var text string
	var calls []openai.ChatCompletionMessageToolCallParam
	for j, b := range blocks {
		switch v := b.(type) {
		case Text:
			text += v.Content
		case ToolUse:
			id := v.ID
			if id == "" {
				id = fmt.Sprintf("tool_%d_%d", index, j)
			}
			args, _ := json.Marshal(v.Input)
			calls = append(calls, openai.ChatCompletionMessageToolCallParam{
				ID: id,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      v.Name,
					Arguments: string(args),
				},
			})
		}
	}
	msg := openai.AssistantMessage(text)
	if len(calls) > 0 {
		msg.OfAssistant.ToolCalls = calls
	}
	return msg
}

func toOpenAITools(tools []skill.ToolDefinition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		var schema map[string]any
		_ = json.Unmarshal(t.InputSchema, &schema)

		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  schema,
			},
		})
	}
	return out
}
