// Package anthropic implements the language-model collaborator on the
// Anthropic Messages API. It owns the native tool-use loop: the agent hands
// over one request plus an executor, and the adapter drives model rounds
// and tool executions until the model stops calling tools.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/kaptinlin/jsonrepair"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/llm"
)

const defaultMaxRounds = 8

// Client drives Anthropic Messages API calls with native tool use.
type Client struct {
	api       sdk.Client
	model     sdk.Model
	maxTokens int64
	maxRounds int
	log       *slog.Logger
}

// Config holds the model settings for a Client.
type Config struct {
	APIKey         string
	Model          string
	MaxTokens      int
	MaxRounds      int
	RequestTimeout time.Duration
}

// NewClient creates a Client for the given model settings.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &Client{
		api:       sdk.NewClient(opts...),
		model:     sdk.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		maxRounds: maxRounds,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Complete sends one request and runs the tool loop until the model stops
// asking for tools or the round cap is hit. Tool results accumulate in the
// order the model issued the calls; tool failures are fed back to the model
// as error results and never abort the loop.
func (c *Client) Complete(ctx context.Context, req llm.Request, exec llm.ToolExecutor) (llm.Reply, error) {
	var reply llm.Reply

	tools := make([]sdk.ToolUnionParam, len(req.Tools))
	for i := range req.Tools {
		tools[i] = sdk.ToolUnionParam{OfTool: toolParam(req.Tools[i])}
	}

	messages := []sdk.MessageParam{
		sdk.NewUserMessage(sdk.NewTextBlock(req.Input)),
	}

	for round := 0; round < c.maxRounds; round++ {
		msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			System:    []sdk.TextBlockParam{{Text: req.System}},
			Messages:  messages,
			Tools:     tools,
		})
		if err != nil {
			return llm.Reply{}, fmt.Errorf("anthropic: messages call: %w", err)
		}

		messages = append(messages, msg.ToParam())

		var (
			roundText   strings.Builder
			toolReturns []sdk.ContentBlockParamUnion
		)
		for _, block := range msg.Content {
			switch variant := block.AsAny().(type) {
			case sdk.TextBlock:
				roundText.WriteString(variant.Text)
			case sdk.ToolUseBlock:
				result := c.runTool(ctx, exec, variant.Name, variant.JSON.Input.Raw())
				reply.ToolResults = append(reply.ToolResults, result)
				toolReturns = append(toolReturns, toolResultBlock(variant.ID, result))
			}
		}
		// Keep the previous round's text when a tool-only response has none.
		if roundText.Len() > 0 {
			reply.Text = roundText.String()
		}

		if len(toolReturns) == 0 {
			return reply, nil
		}
		messages = append(messages, sdk.NewUserMessage(toolReturns...))
	}

	c.log.WarnContext(ctx, "tool loop round cap reached", slog.Int("rounds", c.maxRounds))
	return reply, nil
}

// runTool decodes model-supplied arguments and executes one tool call.
// Argument decode failures become error results, not Go errors.
func (c *Client) runTool(ctx context.Context, exec llm.ToolExecutor, name, rawArgs string) domain.ToolExecutionResult {
	args, err := decodeArgs(rawArgs)
	if err != nil {
		c.log.WarnContext(ctx, "unparseable tool arguments",
			slog.String("tool", name),
			slog.String("error", err.Error()),
		)
		return domain.NewToolError(name, "invalid tool arguments: "+err.Error())
	}

	c.log.DebugContext(ctx, "tool call", slog.String("tool", name))
	return exec.Execute(ctx, name, args)
}

// toolParam converts a domain tool spec into the SDK tool definition.
func toolParam(spec domain.ToolSpec) *sdk.ToolParam {
	return &sdk.ToolParam{
		Name:        spec.Name,
		Description: sdk.String(spec.Description),
		InputSchema: sdk.ToolInputSchemaParam{
			Properties: spec.Properties,
			Required:   spec.Required,
		},
	}
}

// toolResultBlock serializes a tool result for the model's next round.
func toolResultBlock(toolUseID string, result domain.ToolExecutionResult) sdk.ContentBlockParamUnion {
	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{"success":false,"error":"result serialization failed"}`)
	}
	return sdk.NewToolResultBlock(toolUseID, string(payload), !result.Success)
}

// decodeArgs parses model-supplied tool arguments, attempting a repair pass
// before giving up. Models occasionally emit truncated or single-quoted
// argument payloads.
func decodeArgs(raw string) (map[string]any, error) {
	if raw == "" || raw == "null" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args, nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("repair arguments: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return nil, fmt.Errorf("decode repaired arguments: %w", err)
	}

	return args, nil
}
