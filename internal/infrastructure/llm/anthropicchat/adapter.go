package anthropicchat

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
)

const defaultMaxTokens = 4096

var _ output.LLMPort = (*Adapter)(nil)

// Adapter speaks the content-block protocol: tool calls are typed blocks
// inside assistant messages, tool results are blocks inside user messages,
// and system text travels on a dedicated channel.
type Adapter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	logger    output.LoggerPort
}

type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Logger    output.LoggerPort
}

func NewAdapter(cfg Config) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, output.ErrMissingCredential
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Adapter{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    cfg.Logger,
	}, nil
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages, systemParts := convertMessages(req.Messages)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages:  messages,
	}

	system := req.System
	if len(systemParts) > 0 {
		parts := systemParts
		if system != "" {
			parts = append([]string{system}, parts...)
		}
		system = strings.Join(parts, "\n\n")
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
	}
	params.Temperature = param.NewOpt(float64(req.Temperature))

	if a.logger != nil {
		a.logger.Debug("Creating message", "model", a.model, "messages", len(messages), "tools", len(req.Tools))
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic message failed: %w", err)
	}

	return parseResponse(msg)
}

func parseResponse(msg *anthropic.Message) (*output.ChatResponse, error) {
	if len(msg.Content) == 0 && msg.StopReason == "" {
		return nil, fmt.Errorf("%w: empty message", output.ErrMalformedReply)
	}

	var textSB strings.Builder
	result := entity.Message{Role: entity.RoleAssistant}

	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			textSB.WriteString(block.Text)
		case "tool_use":
			result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
				ID:    block.ID,
				Name:  block.Name,
				Input: block.Input,
			})
		}
	}
	result.Content = textSB.String()

	return &output.ChatResponse{
		Message:    result,
		StopReason: string(msg.StopReason),
	}, nil
}

// convertMessages re-expresses the agnostic transcript in block form.
// System messages are pulled out for the system channel; consecutive
// tool-role messages answering one assistant turn coalesce into a single
// user message so the protocol validator never sees a dangling tool call.
func convertMessages(messages []entity.Message) ([]anthropic.MessageParam, []string) {
	var result []anthropic.MessageParam
	var systemParts []string

	i := 0
	for i < len(messages) {
		m := messages[i]
		switch m.Role {
		case entity.RoleSystem:
			if m.Content != "" {
				systemParts = append(systemParts, m.Content)
			}
			i++
		case entity.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, tc.Input, tc.Name))
			}
			if len(blocks) == 0 {
				blocks = append(blocks, anthropic.NewTextBlock(""))
			}
			result = append(result, anthropic.NewAssistantMessage(blocks...))
			i++
		case entity.RoleTool:
			var toolBlocks []anthropic.ContentBlockParamUnion
			for i < len(messages) && messages[i].Role == entity.RoleTool {
				toolBlocks = append(toolBlocks,
					anthropic.NewToolResultBlock(messages[i].ToolCallID, messages[i].Content, false),
				)
				i++
			}
			result = append(result, anthropic.NewUserMessage(toolBlocks...))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
			i++
		}
	}
	return result, systemParts
}

func convertTools(tools []entity.ToolDefinition) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		schema := anthropic.ToolInputSchemaParam{}
		if props, ok := t.Parameters["properties"]; ok {
			schema.Properties = props
		}
		if req, ok := t.Parameters["required"].([]string); ok {
			schema.Required = req
		}

		tp := anthropic.ToolUnionParamOfTool(schema, t.Name.String())
		tp.OfTool.Description = param.NewOpt(t.Description)
		result = append(result, tp)
	}
	return result
}
