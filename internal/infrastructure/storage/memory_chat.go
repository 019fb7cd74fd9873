package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// MemoryChatRepository keeps conversation history in memory. Each
// user's window is trimmed to maxSize turns.
type MemoryChatRepository struct {
	mu       sync.RWMutex
	contexts map[int64]*entity.ChatContext
	maxSize  int
}

// NewMemoryChatRepository creates an in-memory chat store keeping at
// most maxSize turns per user.
func NewMemoryChatRepository(maxSize int) repository.ChatRepository {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &MemoryChatRepository{
		contexts: make(map[int64]*entity.ChatContext),
		maxSize:  maxSize,
	}
}

func (r *MemoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.contexts[message.UserID]
	if !ok {
		chat = &entity.ChatContext{UserID: message.UserID}
		r.contexts[message.UserID] = chat
	}

	chat.Messages = append(chat.Messages, message)
	if len(chat.Messages) > r.maxSize {
		chat.Messages = chat.Messages[len(chat.Messages)-r.maxSize:]
	}
	chat.LastUsed = time.Now()
	return nil
}

func (r *MemoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chat, ok := r.contexts[userID]
	if !ok {
		return nil, nil
	}

	messages := chat.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	out := make([]entity.Message, len(messages))
	copy(out, messages)
	return out, nil
}

func (r *MemoryChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []entity.Message
	for _, chat := range r.contexts {
		all = append(all, chat.Messages...)
	}

	// Newest first for the admin view.
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.contexts, userID)
	return nil
}

func (r *MemoryChatRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contexts = make(map[int64]*entity.ChatContext)
	return nil
}
