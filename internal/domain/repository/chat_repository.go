package repository

import (
	"context"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// ChatRepository stores per-user conversation history.
type ChatRepository interface {
	// SaveMessage appends a turn to the user's history.
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory returns the user's most recent turns, oldest first.
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// GetAllMessages returns the newest turns across all users (admin view).
	GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error)

	// ClearHistory removes one user's history.
	ClearHistory(ctx context.Context, userID int64) error

	// ClearAll removes every user's history.
	ClearAll(ctx context.Context) error
}
