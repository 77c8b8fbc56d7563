// Package llm defines the contract between the agent core and
// language-model adapters.
package llm

import (
	"context"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// Request is one model invocation: a system instruction, the user's free
// text, and the tool contracts the model may call.
type Request struct {
	System string
	Input  string
	Tools  []domain.ToolSpec
}

// Reply is the outcome of one invocation after the adapter has driven the
// tool loop to completion: the model's final text plus every tool result
// in the order the model issued the calls.
type Reply struct {
	Text        string
	ToolResults []domain.ToolExecutionResult
}

// ToolExecutor runs one named tool call issued by the model.
// Implementations never return an error: failures are encoded in the
// result itself so one broken call cannot abort its siblings.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) domain.ToolExecutionResult
}
