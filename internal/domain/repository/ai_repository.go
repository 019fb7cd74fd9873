package repository

import "context"

// AIRepository is the optional language-model collaborator. The core
// never depends on it for correctness: callers fall back to the
// deterministic parser when a call fails, times out or returns
// something unparsable.
type AIRepository interface {
	// Complete sends a raw prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}
