package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dev-assessment-be/pkg/evidence"
	"dev-assessment-be/pkg/llm"
)

// Sink receives ordered fragments of the model's in-progress answer.
type Sink func(chunk string)

// maxTurns bounds the tool-calling loop against models that never stop
// requesting tools. Hitting the cap is treated as completion; whatever
// text accumulated goes to the validator, whose fallback absorbs garbage.
const maxTurns = 8

// Orchestrator drives the multi-turn generation loop: it offers the
// evidence catalog to the model, mechanically executes whichever tools
// the model requests, relays the results back into the context and
// repeats until the model produces a final answer. It never decides which
// tools to call itself.
type Orchestrator struct {
	provider    llm.LLMProvider
	catalog     *evidence.Catalog
	logger      *log.Logger
	temperature float64
	maxTokens   int
}

func NewOrchestrator(provider llm.LLMProvider, catalog *evidence.Catalog, logger *log.Logger, temperature float64, maxTokens int) *Orchestrator {
	return &Orchestrator{
		provider:    provider,
		catalog:     catalog,
		logger:      logger,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Run executes one full synthesis for a subject, pushing every stream
// chunk to sink in order. It returns the model's final answer text. The
// only error it surfaces is a model runtime (transport) failure —
// tool-level upstream failures are serialized back into the generation
// context for the model to work around.
func (o *Orchestrator) Run(ctx context.Context, username string, sink Sink) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: systemInstructions()},
		{Role: "user", Content: buildTaskPrompt(username)},
	}

	var onChunk llm.StreamHandler
	if sink != nil {
		onChunk = func(chunk string) { sink(chunk) }
	} else {
		onChunk = func(string) {}
	}

	lastText := ""
	for turn := 0; turn < maxTurns; turn++ {
		result, err := o.provider.StreamChat(
			ctx,
			history,
			o.catalog.Declarations(),
			onChunk,
			llm.WithTemperature(o.temperature),
			llm.WithMaxTokens(o.maxTokens),
		)
		if err != nil {
			return "", fmt.Errorf("model runtime failure: %w", err)
		}

		if result.Text != "" {
			lastText = result.Text
		}
		if len(result.ToolCalls) == 0 {
			return lastText, nil
		}

		history = append(history, llm.Message{
			Role:      "assistant",
			Content:   result.Text,
			ToolCalls: result.ToolCalls,
		})

		for _, call := range result.ToolCalls {
			toolResult := &llm.ToolResult{ID: call.ID, Name: call.Name}

			payload, err := o.catalog.Execute(ctx, call)
			if err != nil {
				o.logger.Printf("[WARN] tool %s failed for %s: %v", call.Name, username, err)
				toolResult.Content = err.Error()
				toolResult.IsError = true
			} else {
				toolResult.Content = toJSONMap(payload)
			}

			history = append(history, llm.Message{Role: "tool", ToolResult: toolResult})
		}
	}

	o.logger.Printf("[WARN] turn cap reached for %s, treating accumulated text as final answer", username)
	return lastText, nil
}

// toJSONMap flattens an evidence record into the generic object shape the
// providers relay as a function response.
func toJSONMap(payload interface{}) map[string]interface{} {
	raw, err := json.Marshal(payload)
	if err != nil {
		return map[string]interface{}{"result": fmt.Sprintf("%v", payload)}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{"result": string(raw)}
	}
	return out
}
