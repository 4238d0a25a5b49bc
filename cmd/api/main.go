package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"financeagent/pkg/api/analysis"
	"financeagent/pkg/api/chat"
	"financeagent/pkg/api/config"
	"financeagent/pkg/api/datasets"
	"financeagent/pkg/core/agent"
	"financeagent/pkg/core/prompt"
	"financeagent/pkg/core/store"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Database: degrade gracefully so analysis of already-parsed files
	// still works in local dev without Postgres.
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable: %v\n", err)
		fmt.Println("  Upload and chat endpoints will return errors until DATABASE_URL is set")
	}
	defer store.Close()

	datasetRepo := store.NewDatasetRepo()
	chatRepo := store.NewChatRepo()

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Dataset endpoints
	datasetHandler := datasets.NewHandler(datasetRepo)
	analysisHandler := analysis.NewHandler(datasetRepo)
	chatHandler := chat.NewHandler(agentMgr, datasetRepo, chatRepo)
	datasetHandler.Analysis = analysisHandler.HandleAnalysis
	datasetHandler.ChatHistory = chatHandler.HandleHistory

	http.HandleFunc("/api/upload", datasetHandler.HandleUpload)
	http.HandleFunc("/api/datasets", datasetHandler.HandleList)
	http.HandleFunc("/api/datasets/", datasetHandler.HandleRoutes)

	// Chat endpoint
	http.HandleFunc("/api/chat", chatHandler.HandleChat)

	// Health
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status": "ok", "service": "ai-finance-agent"}`)
	})

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/upload")
	fmt.Println("  - GET  /api/datasets")
	fmt.Println("  - GET  /api/datasets/{id}")
	fmt.Println("  - GET  /api/datasets/{id}/analysis")
	fmt.Println("  - GET  /api/datasets/{id}/chat-history")
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
