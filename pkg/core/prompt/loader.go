package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromDirectory loads all prompt JSON files from a directory structure:
//
//	baseDir/
//	  prompts/
//	    category1/
//	      prompt1.json
func LoadFromDirectory(baseDir string) error {
	registry := Get()

	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}

	err := filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var pt PromptTemplate
		if err := json.Unmarshal(data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if pt.ID == "" {
			pt.ID = generateIDFromPath(path, promptDir)
		}
		if pt.Category == "" {
			pt.Category = detectCategory(path, promptDir)
		}

		return Get().Register(&pt)
	})
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	fmt.Printf("[prompt.Loader] Loaded %d prompts from %s\n", registry.Count(), baseDir)
	return nil
}

// generateIDFromPath creates a prompt ID from the file path
// e.g., "prompts/agent/finance_agent.json" -> "agent.finance_agent"
func generateIDFromPath(path string, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	relPath = strings.TrimSuffix(relPath, ".json")
	relPath = strings.ReplaceAll(relPath, string(filepath.Separator), ".")
	return relPath
}

// detectCategory extracts the category from the folder structure
func detectCategory(path string, baseDir string) string {
	relPath, _ := filepath.Rel(baseDir, path)
	parts := strings.Split(relPath, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return "default"
}
