package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dev-assessment-be/pkg/llm"
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
			Timeout: 180 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiFunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiFunctionDeclaration struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  *llm.Schema `json:"parameters,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	turn, err := g.call(ctx, history, nil, nil, opts...)
	if err != nil {
		return "", err
	}
	return turn.Text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (g *GeminiProvider) StreamChat(ctx context.Context, history []llm.Message, tools []llm.Tool, onChunk llm.StreamHandler, opts ...llm.Option) (*llm.Turn, error) {
	return g.call(ctx, history, tools, onChunk, opts...)
}

// call issues one generation turn. With onChunk set it uses the SSE
// streaming endpoint; otherwise a blocking generateContent call.
func (g *GeminiProvider) call(ctx context.Context, history []llm.Message, tools []llm.Tool, onChunk llm.StreamHandler, opts ...llm.Option) (*llm.Turn, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	payload := geminiRequest{
		Contents: mapHistory(history),
	}
	if sys := systemText(history); sys != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: sys}}}
	}
	if len(tools) > 0 {
		decls := make([]geminiFunctionDeclaration, 0, len(tools))
		for _, t := range tools {
			decls = append(decls, geminiFunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			})
		}
		payload.Tools = []geminiTool{{FunctionDeclarations: decls}}
	}
	temp := options.Temperature
	payload.GenerationConfig = &geminiGenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: options.MaxTokens,
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	method := "generateContent"
	query := ""
	if onChunk != nil {
		method = "streamGenerateContent"
		query = "?alt=sse"
	}
	endpoint := fmt.Sprintf("%s/models/%s:%s%s", g.BaseURL, model, method, query)

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	if onChunk != nil {
		return readSSE(res.Body, onChunk)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var parsed geminiResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, err
	}
	turn := &llm.Turn{}
	collectParts(&parsed, turn, nil)
	return turn, nil
}

// readSSE consumes a streamGenerateContent?alt=sse body. Each "data:"
// line carries one incremental geminiResponse.
func readSSE(body io.Reader, onChunk llm.StreamHandler) (*llm.Turn, error) {
	turn := &llm.Turn{}
	var text strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		var parsed geminiResponse
		if err := json.Unmarshal([]byte(data), &parsed); err != nil {
			continue
		}
		collectParts(&parsed, turn, func(chunk string) {
			text.WriteString(chunk)
			onChunk(chunk)
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gemini stream read failed: %w", err)
	}

	turn.Text = text.String()
	return turn, nil
}

func collectParts(parsed *geminiResponse, turn *llm.Turn, onText func(string)) {
	for _, cand := range parsed.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				if onText != nil {
					onText(part.Text)
				} else {
					turn.Text += part.Text
				}
			}
			if part.FunctionCall != nil {
				turn.ToolCalls = append(turn.ToolCalls, llm.ToolCall{
					ID:        fmt.Sprintf("%s-%d", part.FunctionCall.Name, len(turn.ToolCalls)),
					Name:      part.FunctionCall.Name,
					Arguments: part.FunctionCall.Args,
				})
			}
		}
	}
}

// mapHistory converts provider-agnostic messages into Gemini contents.
// System messages are lifted out by systemText and skipped here.
func mapHistory(history []llm.Message) []geminiContent {
	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "system":
			continue
		case "assistant", "model":
			content := geminiContent{Role: "model"}
			if msg.Content != "" {
				content.Parts = append(content.Parts, geminiPart{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				content.Parts = append(content.Parts, geminiPart{
					FunctionCall: &geminiFunctionCall{Name: call.Name, Args: call.Arguments},
				})
			}
			contents = append(contents, content)
		case "tool":
			if msg.ToolResult == nil {
				continue
			}
			contents = append(contents, geminiContent{
				Role: "user",
				Parts: []geminiPart{{
					FunctionResponse: &geminiFunctionResponse{
						Name:     msg.ToolResult.Name,
						Response: wrapResponse(msg.ToolResult),
					},
				}},
			})
		default:
			contents = append(contents, geminiContent{
				Role:  "user",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		}
	}
	return contents
}

// wrapResponse normalizes a tool result into the object shape the
// functionResponse field requires.
func wrapResponse(result *llm.ToolResult) map[string]interface{} {
	if result.IsError {
		return map[string]interface{}{"error": fmt.Sprintf("%v", result.Content)}
	}
	if m, ok := result.Content.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"result": result.Content}
}

func systemText(history []llm.Message) string {
	var parts []string
	for _, msg := range history {
		if msg.Role == "system" && msg.Content != "" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n")
}
