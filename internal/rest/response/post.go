package response

import "github.com/GhostMEn20034/small-social-network/domain"

type Post struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Draft      bool   `json:"draft"`
	AuthorID   int64  `json:"author_id"`
	AutoReply  bool   `json:"auto_reply"`
	ReplyAfter *int64 `json:"reply_after"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`

	// Author information, present on joined reads
	Author *User `json:"author,omitempty"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Draft:      p.Draft,
		AuthorID:   p.AuthorID,
		AutoReply:  p.AutoReply,
		ReplyAfter: p.ReplyAfter,
		CreatedAt:  p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  p.UpdatedAt.Format(DateTimeFormat),
		Author:     NewUserFromDomain(p.Author),
	}
}
