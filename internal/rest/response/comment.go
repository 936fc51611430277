package response

import "github.com/GhostMEn20034/small-social-network/domain"

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

type Comment struct {
	ID         int64   `json:"id"`
	Content    string  `json:"content"`
	LikesCount int64   `json:"likes_count"`
	PostID     int64   `json:"post_id"`
	OwnerID    int64   `json:"owner_id"`
	ParentID   *int64  `json:"parent_id"`
	Blocked    bool    `json:"blocked"`
	BlockedAt  *string `json:"blocked_at"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`

	// Owner information, present on detail reads
	Owner *User `json:"owner,omitempty"`
}

type CommentWithReplies struct {
	Comment *Comment   `json:"comment"`
	Replies []*Comment `json:"replies"`
}

type DailyCommentStat struct {
	Date            string `json:"date"`
	TotalComments   int64  `json:"total_comments"`
	BlockedComments int64  `json:"blocked_comments"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{
		ID:         c.ID,
		Content:    c.Content,
		LikesCount: c.LikesCount,
		PostID:     c.PostID,
		OwnerID:    c.OwnerID,
		ParentID:   c.ParentID,
		Blocked:    c.Blocked,
		CreatedAt:  c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  c.UpdatedAt.Format(DateTimeFormat),
		Owner:      NewUserFromDomain(c.Owner),
	}
	if c.BlockedAt != nil {
		blockedAt := c.BlockedAt.Format(DateTimeFormat)
		res.BlockedAt = &blockedAt
	}
	return res
}

func NewCommentWithRepliesFromDomain(c *domain.Comment) *CommentWithReplies {
	if c == nil {
		return nil
	}
	replies := make([]*Comment, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, NewCommentFromDomain(r))
	}
	return &CommentWithReplies{
		Comment: NewCommentFromDomain(c),
		Replies: replies,
	}
}

func NewDailyCommentStatFromDomain(s domain.DailyCommentStat) DailyCommentStat {
	return DailyCommentStat{
		Date:            s.Date.Format(DateFormat),
		TotalComments:   s.TotalComments,
		BlockedComments: s.BlockedComments,
	}
}
