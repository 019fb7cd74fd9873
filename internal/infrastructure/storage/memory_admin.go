package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
	"github.com/yourusername/quotation-ai-bot/internal/domain/repository"
)

// sessionTimeout is how long an admin login stays valid.
const sessionTimeout = 24 * time.Hour

// MemoryAdminRepository keeps admin sessions and the audit log in
// memory. Sessions expire after sessionTimeout.
type MemoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
}

// NewMemoryAdminRepository creates an empty admin store.
func NewMemoryAdminRepository() repository.AdminRepository {
	return &MemoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
	}
}

func (r *MemoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.UserID] = session
	return nil
}

func (r *MemoryAdminRepository) GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	if !ok {
		return nil, nil
	}
	if time.Since(session.LastActivity) > sessionTimeout {
		return nil, nil
	}
	return &session, nil
}

func (r *MemoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}

func (r *MemoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || !session.IsAdmin {
		return false, nil
	}
	if time.Since(session.LastActivity) > sessionTimeout {
		delete(r.sessions, userID)
		return false, nil
	}

	session.LastActivity = time.Now()
	r.sessions[userID] = session
	return true, nil
}

func (r *MemoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions = append(r.actions, action)
	return nil
}
