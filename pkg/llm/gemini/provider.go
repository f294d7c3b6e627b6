package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-rooms-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	APIKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		BaseURL:   defaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Tools             []geminiTool     `json:"tools,omitempty"`
	ToolConfig        *geminiToolCfg   `json:"toolConfig,omitempty"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text             string          `json:"text,omitempty"`
	FunctionCall     *geminiFuncCall `json:"functionCall,omitempty"`
	FunctionResponse *geminiFuncResp `json:"functionResponse,omitempty"`
}

type geminiFuncCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiFuncResp struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFuncDecl `json:"functionDeclarations"`
}

type geminiFuncDecl struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Parameters  *geminiSchema `json:"parameters,omitempty"`
}

type geminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Enum        []string                 `json:"enum,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

type geminiToolCfg struct {
	FunctionCallingConfig geminiFuncCfg `json:"functionCallingConfig"`
}

type geminiFuncCfg struct {
	Mode string `json:"mode"` // AUTO, ANY, NONE
}

type geminiGenConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// --- HTTP plumbing ---

func (g *GeminiProvider) call(ctx context.Context, model string, payload *geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &llm.APIError{
			StatusCode: resp.StatusCode,
			Message:    string(bodyBytes),
		}
		if parsed.Error != nil {
			apiErr.Status = parsed.Error.Status
			apiErr.Message = parsed.Error.Message
		}
		return nil, apiErr
	}

	return &parsed, nil
}

func (g *GeminiProvider) model(options *llm.Options) string {
	if options.Model != "" {
		return options.Model
	}
	return g.ModelName
}

func mapRole(role string) string {
	// Gemini uses "model" for assistant turns
	if role == "assistant" || role == "system" {
		return "model"
	}
	return "user"
}

func extractTurn(resp *geminiResponse) (*llm.Turn, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	turn := &llm.Turn{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.FunctionCall != nil && turn.FunctionCall == nil {
			turn.FunctionCall = &llm.FunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
		}
		if part.Text != "" {
			turn.Text += part.Text
		}
	}
	return turn, nil
}

func buildTools(defs []llm.ToolDef) []geminiTool {
	if len(defs) == 0 {
		return nil
	}
	decls := make([]geminiFuncDecl, len(defs))
	for i, def := range defs {
		decl := geminiFuncDecl{
			Name:        def.Name,
			Description: def.Description,
		}
		if len(def.Params) > 0 {
			schema := &geminiSchema{
				Type:       "object",
				Properties: make(map[string]*geminiSchema, len(def.Params)),
			}
			for _, p := range def.Params {
				schema.Properties[p.Name] = &geminiSchema{
					Type:        p.Type,
					Description: p.Description,
					Enum:        p.Enum,
				}
				if p.Required {
					schema.Required = append(schema.Required, p.Name)
				}
			}
			decl.Parameters = schema
		}
		decls[i] = decl
	}
	return []geminiTool{{FunctionDeclarations: decls}}
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	payload := &geminiRequest{
		GenerationConfig: &geminiGenConfig{
			Temperature:     &options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}

	if options.SystemInstruction != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: options.SystemInstruction}},
		}
	}

	for _, msg := range history {
		// System turns inside history fold into the system instruction
		if msg.Role == "system" {
			if payload.SystemInstruction == nil {
				payload.SystemInstruction = &geminiContent{
					Parts: []geminiPart{{Text: msg.Content}},
				}
			} else {
				payload.SystemInstruction.Parts = append(payload.SystemInstruction.Parts, geminiPart{Text: msg.Content})
			}
			continue
		}
		payload.Contents = append(payload.Contents, geminiContent{
			Role:  mapRole(msg.Role),
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	resp, err := g.call(ctx, g.model(options), payload)
	if err != nil {
		return "", err
	}
	turn, err := extractTurn(resp)
	if err != nil {
		return "", err
	}
	return turn.Text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (g *GeminiProvider) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	conv := &geminiConversation{
		provider: g,
		model:    g.ModelName,
		tools:    buildTools(cfg.Tools),
	}

	if cfg.SystemInstruction != "" {
		conv.system = &geminiContent{
			Parts: []geminiPart{{Text: cfg.SystemInstruction}},
		}
	}

	if cfg.ForceToolCall {
		conv.toolConfig = &geminiToolCfg{
			FunctionCallingConfig: geminiFuncCfg{Mode: "ANY"},
		}
	}

	for _, msg := range cfg.History {
		conv.contents = append(conv.contents, geminiContent{
			Role:  mapRole(msg.Role),
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	return conv, nil
}

// geminiConversation carries the full transcript, including function calls
// and their responses, across turns.
type geminiConversation struct {
	provider   *GeminiProvider
	model      string
	system     *geminiContent
	tools      []geminiTool
	toolConfig *geminiToolCfg
	contents   []geminiContent
}

func (c *geminiConversation) exchange(ctx context.Context, next geminiContent) (*llm.Turn, error) {
	contents := append(append([]geminiContent{}, c.contents...), next)

	payload := &geminiRequest{
		Contents:          contents,
		SystemInstruction: c.system,
		Tools:             c.tools,
		ToolConfig:        c.toolConfig,
	}

	resp, err := c.provider.call(ctx, c.model, payload)
	if err != nil {
		return nil, err
	}
	turn, err := extractTurn(resp)
	if err != nil {
		return nil, err
	}

	// Commit both sides of the exchange only after success
	c.contents = contents
	reply := geminiContent{Role: "model"}
	if turn.FunctionCall != nil {
		reply.Parts = append(reply.Parts, geminiPart{
			FunctionCall: &geminiFuncCall{Name: turn.FunctionCall.Name, Args: turn.FunctionCall.Args},
		})
	}
	if turn.Text != "" {
		reply.Parts = append(reply.Parts, geminiPart{Text: turn.Text})
	}
	c.contents = append(c.contents, reply)

	return turn, nil
}

func (c *geminiConversation) Send(ctx context.Context, text string) (*llm.Turn, error) {
	return c.exchange(ctx, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: text}},
	})
}

func (c *geminiConversation) SendToolResult(ctx context.Context, name string, result map[string]interface{}) (*llm.Turn, error) {
	return c.exchange(ctx, geminiContent{
		Role: "user",
		Parts: []geminiPart{{
			FunctionResponse: &geminiFuncResp{Name: name, Response: result},
		}},
	})
}
