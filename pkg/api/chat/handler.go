package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"financeagent/pkg/api/datasets"
	"financeagent/pkg/core/agent"
	"financeagent/pkg/core/prompt"
	"financeagent/pkg/core/store"
	"financeagent/pkg/core/tools"
	"financeagent/pkg/models"
)

// historyWindow is how many prior messages the agent sees per turn.
const historyWindow = 20

// fallbackSystemPrompt keeps the agent usable when the prompt library
// failed to load.
const fallbackSystemPrompt = "You are an expert financial analyst AI agent. " +
	"Use your tools to ground every answer in the dataset's actual numbers."

// Handler wires the chat endpoint to the agent executor
type Handler struct {
	agentMgr *agent.Manager
	datasets *store.DatasetRepo
	chats    *store.ChatRepo
}

// NewHandler creates a new chat handler
func NewHandler(mgr *agent.Manager, datasetRepo *store.DatasetRepo, chatRepo *store.ChatRepo) *Handler {
	return &Handler{agentMgr: mgr, datasets: datasetRepo, chats: chatRepo}
}

// ChatRequest is the user's message bound to a dataset
type ChatRequest struct {
	DatasetID string `json:"dataset_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the agent's answer and the tools it invoked
type ChatResponse struct {
	Response  string   `json:"response"`
	ToolsUsed []string `json:"tools_used"`
}

// HandleChat serves POST /api/chat: one full agent turn over a dataset
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DatasetID == "" || req.Message == "" {
		http.Error(w, "dataset_id and message are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if _, err := h.datasets.Get(ctx, req.DatasetID); err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	records, err := h.datasets.LoadRecords(ctx, req.DatasetID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load records: %v", err), http.StatusInternalServerError)
		return
	}

	history, err := h.chats.History(ctx, req.DatasetID, historyWindow)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load chat history: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.chats.Append(ctx, req.DatasetID, models.ChatMessage{
		Role: "user", Message: req.Message, Timestamp: time.Now().UTC(),
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save message: %v", err), http.StatusInternalServerError)
		return
	}

	systemPrompt, err := prompt.Get().GetSystemPrompt("agent.finance_agent")
	if err != nil {
		systemPrompt = fallbackSystemPrompt
	}

	executor := agent.NewExecutor(h.agentMgr.GetProvider("finance"), tools.NewRegistry(records))
	result, err := executor.Run(ctx, systemPrompt, req.Message, history)
	if err != nil {
		http.Error(w, fmt.Sprintf("Agent failed: %v", err), http.StatusInternalServerError)
		return
	}

	if err := h.chats.Append(ctx, req.DatasetID, models.ChatMessage{
		Role: "assistant", Message: result.Response, Timestamp: time.Now().UTC(),
	}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save response: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(ChatResponse{
		Response:  result.Response,
		ToolsUsed: result.ToolsUsed,
	})
}

// HandleHistory serves GET /api/datasets/{id}/chat-history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := datasets.DatasetIDFromPath(r.URL.Path)

	messages, err := h.chats.History(r.Context(), id, 0)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load chat history: %v", err), http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	json.NewEncoder(w).Encode(messages)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
