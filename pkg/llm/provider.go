package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string

	// ToolCalls is set on assistant messages that requested tool
	// executions mid-generation.
	ToolCalls []ToolCall

	// ToolResult is set on "tool" messages carrying an execution result
	// back into the generation context.
	ToolResult *ToolResult
}

// ToolCall is a model-issued request to execute one declared tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// ToolResult pairs a tool call with the payload it produced. Content is
// marshalled to JSON by the provider; errors are relayed as content with
// IsError set so the model can adapt instead of the run aborting.
type ToolResult struct {
	ID      string
	Name    string
	Content interface{}
	IsError bool
}

// Schema is an OpenAPI-subset schema used for tool parameter declarations
// (the format Gemini and Ollama function calling both accept).
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Tool declares one callable capability offered to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// StreamHandler receives ordered fragments of the model's in-progress
// text output. It must not block for long; buffering is the caller's
// concern.
type StreamHandler func(chunk string)

// Turn is the outcome of one streamed generation turn: the text produced
// so far plus any tool calls the model wants executed before continuing.
type Turn struct {
	Text      string
	ToolCalls []ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// StreamChat runs one generation turn with the given tool set,
	// pushing text fragments to onChunk as they arrive. The returned
	// Turn lists any tool calls the model issued; an empty list means
	// the model produced its final answer.
	StreamChat(ctx context.Context, history []Message, tools []Tool, onChunk StreamHandler, options ...Option) (*Turn, error)
}
