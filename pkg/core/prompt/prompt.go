// Package prompt provides a centralized prompt library for LLM
// interactions. Prompts live in JSON files and are loaded at runtime, so
// wording changes never require a rebuild.
package prompt

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID           string `json:"id"`            // Unique identifier (e.g., "agent.finance")
	Name         string `json:"name"`          // Human-readable name
	Category     string `json:"category"`      // Category (agent, formatting, etc.)
	Description  string `json:"description"`   // Description of prompt purpose
	SystemPrompt string `json:"system_prompt"` // The system prompt content
	Version      string `json:"version"`       // Version for tracking changes
}
