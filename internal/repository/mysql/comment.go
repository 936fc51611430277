package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}

	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	comment.UpdatedAt = commentModel.UpdatedAt
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	if err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) GetWithPost(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).
		Joins("Post").
		First(&comment, "comments.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) GetWithReplies(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).
		Where("id = ? AND blocked = ?", id, false).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var replies []model.Comment
	err = c.DB.WithContext(ctx).
		Where("parent_id = ? AND blocked = ?", id, false).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	domainComment := comment.ToDomain()
	domainComment.Replies = make([]*domain.Comment, 0, len(replies))
	for i := range replies {
		reply := replies[i].ToDomain()
		domainComment.Replies = append(domainComment.Replies, &reply)
	}
	return &domainComment, nil
}

func (c *commentRepository) FetchTopLevel(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL AND blocked = ?", postID, false).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	result := c.DB.WithContext(ctx).Model(commentModel).
		Select("content", "blocked", "blocked_at", "updated_at").
		Updates(commentModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *commentRepository) AddLikes(ctx context.Context, id int64, delta int64) error {
	return c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func (c *commentRepository) Delete(ctx context.Context, id int64) error {
	result := c.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const dailyAnalyticQuery = `
SELECT DATE(comments.created_at)                               AS date,
       COUNT(comments.id)                                      AS total_comments,
       SUM(CASE WHEN comments.blocked THEN 1 ELSE 0 END)       AS blocked_comments
FROM comments
JOIN posts ON posts.id = comments.post_id
WHERE posts.author_id = ?
  AND DATE(comments.created_at) BETWEEN ? AND ?
GROUP BY DATE(comments.created_at)
ORDER BY DATE(comments.created_at) ASC`

func (c *commentRepository) DailyAnalytic(ctx context.Context, authorID int64, rng domain.DateRange) ([]domain.DailyCommentStat, error) {
	var rows []domain.DailyCommentStat
	err := c.DB.WithContext(ctx).
		Raw(dailyAnalyticQuery, authorID, rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
