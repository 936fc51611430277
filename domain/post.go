package domain

import (
	"context"
	"time"
)

// Post is representing the Post data struct
type Post struct {
	ID         int64     // Unique identifier for the post
	Title      string    // Post title
	Content    string    // Post body content
	Draft      bool      // Draft posts are not published yet
	AuthorID   int64     // Owning user's ID
	Author     *User     // Author information, filled on joined reads
	AutoReply  bool      // Whether an automated reply is posted to new comments
	ReplyAfter *int64    // Minutes to wait before the automated reply, set iff AutoReply
	UpdatedAt  time.Time // Last update timestamp
	CreatedAt  time.Time // Creation timestamp
}

// AutoReplyDelay returns the configured delay before an automated reply fires.
func (p *Post) AutoReplyDelay() time.Duration {
	if p.ReplyAfter == nil {
		return 0
	}
	return time.Duration(*p.ReplyAfter) * time.Minute
}

// PostRepository defines the contract for post data persistence
type PostRepository interface {
	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// GetWithAuthor retrieves a post joined with its author.
	// Returns ErrNotFound if the post doesn't exist.
	GetWithAuthor(ctx context.Context, id int64) (Post, error)

	// FetchByAuthor retrieves all posts authored by the given user.
	FetchByAuthor(ctx context.Context, authorID int64) ([]Post, error)

	// FetchWithAuthors retrieves all posts with their author joined.
	FetchWithAuthors(ctx context.Context) ([]Post, error)

	// Store creates a new post, backfilling its ID.
	Store(ctx context.Context, p *Post) error

	// Update modifies an existing post.
	Update(ctx context.Context, p *Post) error

	// Delete removes a post by its ID, cascading to its comments.
	Delete(ctx context.Context, id int64) error
}

// PostUsecase defines the business logic contract for post operations.
type PostUsecase interface {
	// Store creates a post. Unlike comments, a post whose text fails
	// moderation is rejected with ErrBadParamInput instead of being flagged.
	Store(ctx context.Context, user User, p *Post) error

	// GetDetails returns a post together with its author.
	GetDetails(ctx context.Context, id int64) (Post, error)

	// FetchOwn returns the posts authored by the given user.
	FetchOwn(ctx context.Context, user User) ([]Post, error)

	// FetchAll returns all posts with author information.
	FetchAll(ctx context.Context) ([]Post, error)

	// Update modifies a post. Only the author may update it.
	Update(ctx context.Context, user User, p *Post) error

	// Delete removes a post. Only the author may delete it.
	Delete(ctx context.Context, user User, id int64) error
}
