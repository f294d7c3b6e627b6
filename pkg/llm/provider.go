package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxTokens         int
	Model             string // Override default model
	SystemInstruction string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// ToolParam describes a single declared function parameter.
type ToolParam struct {
	Name        string
	Type        string // "string", "integer", "number", "boolean"
	Description string
	Required    bool
	Enum        []string
}

// ToolDef declares a function the model may call.
type ToolDef struct {
	Name        string
	Description string
	Params      []ToolParam
}

// FunctionCall is a tool invocation proposed by the model.
type FunctionCall struct {
	Name string
	Args map[string]interface{}
}

// Turn is one model reply inside a conversation. Exactly one of Text or
// FunctionCall is meaningful.
type Turn struct {
	Text         string
	FunctionCall *FunctionCall
}

// ConversationConfig seeds a stateful exchange. When ForceToolCall is set the
// model must answer every turn with a function call.
type ConversationConfig struct {
	History           []Message
	SystemInstruction string
	Tools             []ToolDef
	ForceToolCall     bool
}

// Conversation is a stateful exchange with the model. Implementations carry
// the full transcript so each call sees everything that came before.
type Conversation interface {
	Send(ctx context.Context, text string) (*Turn, error)
	SendToolResult(ctx context.Context, name string, result map[string]interface{}) (*Turn, error)
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	// Chat exchanges carry no tool declarations.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// StartConversation opens a tool-capable exchange
	StartConversation(ctx context.Context, cfg ConversationConfig) (Conversation, error)
}
