package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

// OpenAIGateway implements domain.ModelGateway on top of langchaingo's
// OpenAI chat-completions client.
type OpenAIGateway struct {
	model llms.Model
}

func NewOpenAIGateway(apiKey, modelName string) (*OpenAIGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai gateway: API key is required")
	}
	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("openai gateway: %w", err)
	}
	return &OpenAIGateway{model: model}, nil
}

func (g *OpenAIGateway) Converse(
	ctx context.Context,
	turns []domain.Turn,
	capabilities []domain.CapabilityDescriptor,
) (*domain.ModelReply, error) {
	messages := convertTurns(turns)

	var options []llms.CallOption
	if len(capabilities) > 0 {
		options = append(options, llms.WithTools(convertCapabilities(capabilities)))
	}

	resp, err := g.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("openai gateway: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai gateway: empty response")
	}

	choice := resp.Choices[0]
	reply := &domain.ModelReply{}

	if len(choice.ToolCalls) > 0 {
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			args := map[string]any{}
			if raw := tc.FunctionCall.Arguments; raw != "" {
				// Malformed argument JSON is a per-call problem for the
				// executor, not a gateway failure.
				_ = json.Unmarshal([]byte(raw), &args)
			}
			reply.ToolCalls = append(reply.ToolCalls, domain.ToolCall{
				Name: tc.FunctionCall.Name,
				Args: args,
			})
		}
	}
	if len(reply.ToolCalls) == 0 {
		reply.Text = choice.Content
	}

	return reply, nil
}

func convertTurns(turns []domain.Turn) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llms.TextParts(mapRole(t.Role), t.Text))
	}
	return messages
}

func mapRole(role domain.Role) llms.ChatMessageType {
	switch role {
	case domain.RoleSystem:
		return llms.ChatMessageTypeSystem
	case domain.RoleAssistant:
		return llms.ChatMessageTypeAI
	case domain.RoleToolResult:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

func convertCapabilities(capabilities []domain.CapabilityDescriptor) []llms.Tool {
	tools := make([]llms.Tool, 0, len(capabilities))
	for _, c := range capabilities {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        c.Name,
				Description: c.Description,
				Parameters:  c.Parameters,
			},
		})
	}
	return tools
}
