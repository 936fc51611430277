package domain

import (
	"context"
	"time"
)

// Comment domain model. Comments form a parent-pointer tree: top-level
// comments have a nil ParentID, replies reference another comment.
type Comment struct {
	ID         int64      `json:"id"`
	Content    string     `json:"content"`
	LikesCount int64      `json:"likes_count"`
	PostID     int64      `json:"post_id"`
	OwnerID    int64      `json:"owner_id"`
	ParentID   *int64     `json:"parent_id"`
	Blocked    bool       `json:"blocked"`
	BlockedAt  *time.Time `json:"blocked_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Post the comment belongs to, filled on joined reads
	Post *Post `json:"post,omitempty"`
	// Owner of the comment, filled on joined reads
	Owner *User `json:"owner,omitempty"`
	// Replies holds the direct child comments
	Replies []*Comment `json:"replies,omitempty"`
}

// Block flags the comment as hidden. The flag is monotonic: editing a
// blocked comment never clears it.
func (c *Comment) Block(at time.Time) {
	c.Blocked = true
	c.BlockedAt = &at
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DailyCommentStat is one analytics bucket: activity on the owner's posts
// during a single calendar day.
type DailyCommentStat struct {
	Date            time.Time `json:"date"`
	TotalComments   int64     `json:"total_comments"`
	BlockedComments int64     `json:"blocked_comments"`
}

// CommentUsecase defines the business logic contract for the comment subsystem.
type CommentUsecase interface {
	// Create moderates and persists a comment on a post, optionally as a
	// reply to parentID. Flagged content is persisted blocked, never
	// rejected. Returns ErrNotFound if the post or parent is missing.
	Create(ctx context.Context, user User, content string, postID int64, parentID *int64) (*Comment, error)

	// AutoReply posts a generated reply to the given comment, attributed to
	// the post's author. Invoked by the scheduler, never by a user request.
	AutoReply(ctx context.Context, commentID int64) error

	// FetchTopLevel returns the unblocked top-level comments of a post.
	FetchTopLevel(ctx context.Context, postID int64) ([]Comment, error)

	// GetDetails returns a comment with its direct unblocked replies.
	// Returns ErrNotFound if the comment is missing or blocked.
	GetDetails(ctx context.Context, commentID int64) (*Comment, error)

	// Update replaces the comment content after re-moderation.
	// Only the comment owner may update it.
	Update(ctx context.Context, commentID int64, user User, content string) (*Comment, error)

	// ToggleLike likes the comment on the first call and removes the like
	// on the next, adjusting the like counter accordingly.
	ToggleLike(ctx context.Context, commentID int64, user User) error

	// BlockComment hides a comment. Only the owner of the post the comment
	// is attached to may block it.
	BlockComment(ctx context.Context, commentID int64, user User) (*Comment, error)

	// Delete removes a comment and its reply subtree.
	// Only the comment owner may delete it.
	Delete(ctx context.Context, commentID int64, user User) error

	// DailyAnalytic aggregates comment activity on the user's posts per
	// calendar day within the range, ordered by date ascending.
	DailyAnalytic(ctx context.Context, rng DateRange, user User) ([]DailyCommentStat, error)
}

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {
	// Store persists a comment and backfills its ID and timestamps.
	Store(ctx context.Context, c *Comment) error

	// GetByID retrieves a comment regardless of its blocked state.
	// Returns ErrNotFound if it doesn't exist.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// GetWithPost retrieves a comment joined with its post.
	// Returns ErrNotFound if it doesn't exist.
	GetWithPost(ctx context.Context, id int64) (*Comment, error)

	// GetWithReplies retrieves an unblocked comment and its direct
	// unblocked replies. Returns ErrNotFound for missing or blocked ones.
	GetWithReplies(ctx context.Context, id int64) (*Comment, error)

	// FetchTopLevel returns unblocked comments of the post with no parent,
	// in creation order.
	FetchTopLevel(ctx context.Context, postID int64) ([]Comment, error)

	// Update persists content/blocked changes of an existing comment.
	Update(ctx context.Context, c *Comment) error

	// AddLikes adjusts the denormalized like counter by delta.
	AddLikes(ctx context.Context, id int64, delta int64) error

	// Delete removes a comment, cascading to replies and likes.
	Delete(ctx context.Context, id int64) error

	// DailyAnalytic counts total and blocked comments per calendar day on
	// posts authored by authorID, within the inclusive range, ascending.
	DailyAnalytic(ctx context.Context, authorID int64, rng DateRange) ([]DailyCommentStat, error)
}
