package domain

import (
	"context"
	"time"
)

// ContentModerator classifies user-authored text.
type ContentModerator interface {
	// ModerateText reports whether the text is safe to publish.
	// Implementations fail closed: when the provider cannot be reached the
	// text is reported unsafe instead of returning an error.
	ModerateText(ctx context.Context, text string) bool
}

// ReplyGenerator produces a text reply for a prompt via single-turn completion.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// AutoReplyScheduler enqueues a deferred auto-reply for a comment.
// Fire-and-forget: once scheduled a task is not revocable, the consumer has
// to cope with a comment that was deleted before the delay elapsed.
type AutoReplyScheduler interface {
	Schedule(ctx context.Context, commentID int64, delay time.Duration) error
}
