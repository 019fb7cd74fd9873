package repository

import (
	"context"

	"github.com/yourusername/quotation-ai-bot/internal/domain/entity"
)

// AdminRepository manages admin sessions and the audit log.
type AdminRepository interface {
	// CreateSession records a successful admin login.
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// GetSession returns the session for a user, if any.
	GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error)

	// DeleteSession logs the user out.
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user holds a live admin session.
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// LogAction appends an audit record.
	LogAction(ctx context.Context, action entity.AdminAction) error
}
