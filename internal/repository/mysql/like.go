package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/repository/mysql/model"
)

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

func (l *likeRepository) Store(ctx context.Context, like *domain.Like) error {
	likeModel := model.NewLikeFromDomain(like)
	if err := l.DB.WithContext(ctx).Create(likeModel).Error; err != nil {
		return err
	}

	like.ID = likeModel.ID
	like.CreatedAt = likeModel.CreatedAt
	return nil
}

func (l *likeRepository) GetByCommentAndOwner(ctx context.Context, commentID, ownerID int64) (domain.Like, error) {
	var like model.Like
	err := l.DB.WithContext(ctx).
		First(&like, "comment_id = ? AND owner_id = ?", commentID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Like{}, domain.ErrNotFound
		}
		return domain.Like{}, err
	}

	return like.ToDomain(), nil
}

func (l *likeRepository) Delete(ctx context.Context, id int64) error {
	result := l.DB.WithContext(ctx).Delete(&model.Like{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
