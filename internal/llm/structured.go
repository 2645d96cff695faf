package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

// Caller invokes a chat model constrained to a schema. Implementations
// either fill out with a value that passed validation or return an
// error; free-text responses never reach the caller.
type Caller interface {
	GenerateStructured(ctx context.Context, system, prompt string, out any) error
}

// Validator is implemented by target types that carry field constraints
// beyond what JSON decoding checks.
type Validator interface {
	Validate() error
}

// Client wraps an eino ChatModel with JSON-only prompting, rate
// limiting and post-decode validation.
type Client struct {
	cm      model.ChatModel
	limiter *rate.Limiter
}

// New creates a structured-output client. The limiter gates every model
// call and is shared across all stages of a run.
func New(cm model.ChatModel, limiter *rate.Limiter) *Client {
	return &Client{cm: cm, limiter: limiter}
}

var _ Caller = (*Client)(nil)

// GenerateStructured sends one prompt and decodes the reply into out.
// The reply is stripped of markdown fences before decoding; decode or
// validation failure is a definite error, never partial data. No retry
// is attempted.
func (c *Client) GenerateStructured(ctx context.Context, system, prompt string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter wait: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: prompt},
	}

	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	clean := strings.TrimSpace(resp.Content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("model output failed validation: %w", err)
		}
	}
	return nil
}
