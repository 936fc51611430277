package model

import (
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

type Post struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Title      string    `gorm:"type:varchar(256);not null"`
	Content    string    `gorm:"type:longtext;not null"`
	Draft      bool      `gorm:"not null;default:false;index"`
	AuthorID   int64     `gorm:"column:author_id;not null;index"`
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AutoReply  bool      `gorm:"column:auto_reply;not null;default:false"`
	ReplyAfter *int64    `gorm:"column:reply_after"`
	CreatedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt  time.Time `gorm:"type:datetime"`

	// Comments cascade on post removal
	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Draft:      p.Draft,
		AuthorID:   p.AuthorID,
		AutoReply:  p.AutoReply,
		ReplyAfter: p.ReplyAfter,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *Post) ToDomain() domain.Post {
	res := domain.Post{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Draft:      m.Draft,
		AuthorID:   m.AuthorID,
		AutoReply:  m.AutoReply,
		ReplyAfter: m.ReplyAfter,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Author != nil {
		author := m.Author.ToDomain()
		res.Author = &author
	}
	return res
}
