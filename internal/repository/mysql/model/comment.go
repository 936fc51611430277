package model

import (
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

type Comment struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	Content    string     `gorm:"type:text;not null"`
	LikesCount int64      `gorm:"column:likes;not null;default:0"`
	PostID     int64      `gorm:"column:post_id;not null;index"`
	Post       *Post      `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	OwnerID    int64      `gorm:"column:owner_id;not null"`
	ParentID   *int64     `gorm:"column:parent_id;index"`
	Parent     *Comment   `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Blocked    bool       `gorm:"not null;default:false"`
	BlockedAt  *time.Time `gorm:"column:blocked_at;type:datetime"`
	CreatedAt  time.Time  `gorm:"type:datetime;index"`
	UpdatedAt  time.Time  `gorm:"type:datetime"`

	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:         c.ID,
		Content:    c.Content,
		LikesCount: c.LikesCount,
		PostID:     c.PostID,
		OwnerID:    c.OwnerID,
		ParentID:   c.ParentID,
		Blocked:    c.Blocked,
		BlockedAt:  c.BlockedAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	res := domain.Comment{
		ID:         m.ID,
		Content:    m.Content,
		LikesCount: m.LikesCount,
		PostID:     m.PostID,
		OwnerID:    m.OwnerID,
		ParentID:   m.ParentID,
		Blocked:    m.Blocked,
		BlockedAt:  m.BlockedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Post != nil {
		post := m.Post.ToDomain()
		res.Post = &post
	}
	if m.Owner != nil {
		owner := m.Owner.ToDomain()
		res.Owner = &owner
	}
	return res
}
