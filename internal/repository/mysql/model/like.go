package model

import (
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CommentID int64     `gorm:"column:comment_id;not null;uniqueIndex:idx_likes_comment_owner"`
	Comment   *Comment  `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	OwnerID   int64     `gorm:"column:owner_id;not null;uniqueIndex:idx_likes_comment_owner"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Like) TableName() string {
	return "likes"
}

func NewLikeFromDomain(l *domain.Like) *Like {
	return &Like{
		ID:        l.ID,
		CommentID: l.CommentID,
		OwnerID:   l.OwnerID,
		CreatedAt: l.CreatedAt,
	}
}

func (m *Like) ToDomain() domain.Like {
	return domain.Like{
		ID:        m.ID,
		CommentID: m.CommentID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}
