package domain

import (
	"context"
	"time"
)

// Like is representing a like record on a comment.
// At most one like exists per (comment, user) pair.
type Like struct {
	ID        int64
	CommentID int64
	OwnerID   int64
	CreatedAt time.Time
}

// LikeRepository defines the data access contract for like records.
type LikeRepository interface {
	// Store persists a like record and backfills its ID.
	Store(ctx context.Context, l *Like) error

	// GetByCommentAndOwner retrieves the like of a user on a comment.
	// Returns ErrNotFound if the user hasn't liked the comment.
	GetByCommentAndOwner(ctx context.Context, commentID, ownerID int64) (Like, error)

	// Delete removes a like record by its ID.
	Delete(ctx context.Context, id int64) error
}
