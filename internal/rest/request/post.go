package request

import "github.com/GhostMEn20034/small-social-network/domain"

type Post struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Draft     bool   `json:"draft"`
	AutoReply bool   `json:"auto_reply"`
	// reply_after is required when auto_reply is set and must be positive
	ReplyAfter *int64 `json:"reply_after" binding:"required_if=AutoReply true,omitempty,gt=0"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		Title:      r.Title,
		Content:    r.Content,
		Draft:      r.Draft,
		AutoReply:  r.AutoReply,
		ReplyAfter: r.ReplyAfter,
	}
}
