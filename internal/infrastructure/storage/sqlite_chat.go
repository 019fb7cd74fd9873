package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// SQLiteChatRepository persists conversation history in SQLite so it
// survives restarts. Each user's window is trimmed to maxSize turns.
type SQLiteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository opens (or creates) the database at path and
// prepares the schema.
func NewSQLiteChatRepository(path string, maxSize int) (*SQLiteChatRepository, error) {
	if maxSize <= 0 {
		maxSize = 20
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id        TEXT PRIMARY KEY,
		user_id   INTEGER NOT NULL,
		username  TEXT,
		text      TEXT NOT NULL,
		response  TEXT,
		timestamp DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, timestamp);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteChatRepository{db: db, maxSize: maxSize}, nil
}

func (r *SQLiteChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO messages (id, user_id, username, text, response, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID, message.UserID, message.Username,
		message.Text, message.Response, message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	// Trim the user's window to maxSize turns.
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE user_id = ? AND id NOT IN (
			SELECT id FROM messages WHERE user_id = ?
			ORDER BY timestamp DESC LIMIT ?
		)`,
		message.UserID, message.UserID, r.maxSize,
	)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = r.maxSize
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, username, text, response, timestamp
		 FROM messages WHERE user_id = ?
		 ORDER BY timestamp DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	// Query returns newest first; callers expect oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *SQLiteChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, username, text, response, timestamp
		 FROM messages ORDER BY timestamp DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *SQLiteChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (r *SQLiteChatRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *SQLiteChatRepository) Close() error {
	return r.db.Close()
}

func scanMessages(rows *sql.Rows) ([]entity.Message, error) {
	var messages []entity.Message
	for rows.Next() {
		var m entity.Message
		var ts time.Time
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Text, &m.Response, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Timestamp = ts
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}
