package agent

import (
	"context"
	"fmt"
	"strings"

	"financeagent/pkg/core/llm"
	"financeagent/pkg/core/tools"
	"financeagent/pkg/core/utils"
	"financeagent/pkg/models"
)

// maxToolCalls caps the number of tool invocations per user turn so a
// confused model cannot loop forever.
const maxToolCalls = 8

// Result is what a completed agent turn returns to the caller.
type Result struct {
	Response  string   `json:"response"`
	ToolsUsed []string `json:"tools_used"`
}

// toolCall is the JSON shape the model is instructed to emit on every step:
// either a tool invocation or a final answer, never both.
type toolCall struct {
	Tool  string            `json:"tool"`
	Args  map[string]string `json:"args"`
	Final string            `json:"final_answer"`
}

// Executor drives the observe-act loop: it shows the model the tool
// catalog, parses each step it emits, runs the requested tool, feeds the
// output back, and stops when the model produces a final answer.
type Executor struct {
	provider llm.Provider
	registry []tools.Tool
}

func NewExecutor(provider llm.Provider, registry []tools.Tool) *Executor {
	return &Executor{provider: provider, registry: registry}
}

// Run executes one agent turn for a user message, with prior chat history
// for context. Tool outputs accumulate in a transcript the model sees on
// every step.
func (e *Executor) Run(ctx context.Context, systemPrompt string, message string, history []models.ChatMessage) (Result, error) {
	fullSystem := systemPrompt + "\n\n" + e.protocolPrompt()

	var transcript strings.Builder
	transcript.WriteString(historyBlock(history))
	transcript.WriteString(fmt.Sprintf("User question: %s\n", message))

	toolsUsed := []string{}
	seen := map[string]bool{}

	for i := 0; i < maxToolCalls; i++ {
		raw, err := e.provider.GenerateResponse(ctx, transcript.String(), fullSystem, map[string]interface{}{
			"response_format": map[string]interface{}{"type": "json_object"},
		})
		if err != nil {
			return Result{}, fmt.Errorf("agent step %d failed: %w", i+1, err)
		}

		call, err := parseToolCall(raw)
		if err != nil {
			// Unparseable step: tell the model and let it retry.
			transcript.WriteString(fmt.Sprintf("\nYour last response was not valid JSON (%v). Respond again following the protocol.\n", err))
			continue
		}

		if call.Final != "" {
			return Result{
				Response:  finalize(call.Final),
				ToolsUsed: toolsUsed,
			}, nil
		}

		tool := tools.Find(e.registry, call.Tool)
		if tool == nil {
			transcript.WriteString(fmt.Sprintf("\nTool %q does not exist. Available tools: %s\n", call.Tool, e.toolNames()))
			continue
		}

		output := tool.Run(call.Args)
		if !seen[tool.Name] {
			seen[tool.Name] = true
			toolsUsed = append(toolsUsed, tool.Name)
		}

		fmt.Printf("[Agent] Tool call %d: %s(%v)\n", i+1, tool.Name, call.Args)
		transcript.WriteString(fmt.Sprintf("\nTool: %s\nArgs: %v\nOutput:\n%s\n", tool.Name, call.Args, output))
	}

	// Tool budget exhausted: force a final answer from what we gathered.
	transcript.WriteString("\nYou have used all available tool calls. Answer the user's question now using only the tool outputs above. Respond with {\"final_answer\": \"...\"}.\n")
	raw, err := e.provider.GenerateResponse(ctx, transcript.String(), fullSystem, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return Result{}, fmt.Errorf("agent final step failed: %w", err)
	}

	call, err := parseToolCall(raw)
	if err != nil || call.Final == "" {
		// Last resort: treat the raw text as the answer.
		return Result{
			Response:  finalize(raw),
			ToolsUsed: toolsUsed,
		}, nil
	}

	return Result{
		Response:  finalize(call.Final),
		ToolsUsed: toolsUsed,
	}, nil
}

// finalize cleans a final answer for delivery and flags replies the
// markdown renderer could not walk.
func finalize(answer string) string {
	out := utils.CleanMarkdown(answer)
	if !utils.ValidateMarkdown(out) {
		fmt.Printf("[Agent] Final answer failed markdown validation\n")
	}
	return out
}

// protocolPrompt describes the tool catalog and the JSON step protocol.
func (e *Executor) protocolPrompt() string {
	var b strings.Builder
	b.WriteString("You have access to the following tools:\n\n")
	for _, t := range e.registry {
		b.WriteString(fmt.Sprintf("- %s: %s\n", t.Name, t.Description))
		for _, arg := range t.Args {
			b.WriteString(fmt.Sprintf("    arg %q: %s\n", arg.Name, arg.Description))
		}
	}
	b.WriteString("\nOn every step respond with a single JSON object, nothing else.\n")
	b.WriteString("To call a tool: {\"tool\": \"<name>\", \"args\": {\"<arg>\": \"<value>\"}}\n")
	b.WriteString("To answer the user: {\"final_answer\": \"<your complete answer>\"}\n")
	b.WriteString("Never emit both \"tool\" and \"final_answer\" in one step.\n")
	return b.String()
}

func (e *Executor) toolNames() string {
	names := make([]string, 0, len(e.registry))
	for _, t := range e.registry {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// parseToolCall extracts a step from raw model output, tolerating fenced
// or slightly malformed JSON.
func parseToolCall(raw string) (toolCall, error) {
	var call toolCall
	if _, err := utils.SmartParse(raw, &call); err != nil {
		return toolCall{}, err
	}
	if call.Tool == "" && call.Final == "" {
		return toolCall{}, fmt.Errorf("step has neither \"tool\" nor \"final_answer\"")
	}
	return call, nil
}

func historyBlock(history []models.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, msg := range history {
		b.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Message))
	}
	b.WriteString("\n")
	return b.String()
}
