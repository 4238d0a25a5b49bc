package store

import (
	"context"
	"fmt"

	"financeagent/pkg/models"
)

// ChatRepo persists the per-dataset conversation log.
//
// Schema assumption (created by EnsureSchema):
//
//	CREATE TABLE IF NOT EXISTS chat_messages (
//	  id BIGSERIAL PRIMARY KEY,
//	  dataset_id TEXT REFERENCES datasets(id) ON DELETE CASCADE,
//	  role TEXT,
//	  message TEXT,
//	  created_at TIMESTAMPTZ
//	);
type ChatRepo struct{}

// NewChatRepo creates a new repository instance.
func NewChatRepo() *ChatRepo {
	return &ChatRepo{}
}

// Append stores one message at the end of a dataset's conversation.
func (r *ChatRepo) Append(ctx context.Context, datasetID string, msg models.ChatMessage) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO chat_messages (dataset_id, role, message, created_at)
		VALUES ($1, $2, $3, $4)`,
		datasetID, msg.Role, msg.Message, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// History returns the most recent limit messages in chronological order.
// limit <= 0 means no limit.
func (r *ChatRepo) History(ctx context.Context, datasetID string, limit int) ([]models.ChatMessage, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT role, message, created_at FROM (
			SELECT id, role, message, created_at
			FROM chat_messages WHERE dataset_id = $1
			ORDER BY id DESC LIMIT $2
		) recent ORDER BY id ASC`
	if limit <= 0 {
		limit = 1000
	}

	rows, err := pool.Query(ctx, query, datasetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.Role, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
