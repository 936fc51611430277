package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository will create an implementation of domain.PostRepository
func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{
		DB: db,
	}
}

func (p *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	var post model.Post
	if err := p.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}

	return post.ToDomain(), nil
}

func (p *postRepository) GetWithAuthor(ctx context.Context, id int64) (domain.Post, error) {
	var post model.Post
	err := p.DB.WithContext(ctx).Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, domain.ErrNotFound
		}
		return domain.Post{}, err
	}

	return post.ToDomain(), nil
}

func (p *postRepository) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	var posts []model.Post
	err := p.DB.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (p *postRepository) FetchWithAuthors(ctx context.Context) ([]domain.Post, error) {
	var posts []model.Post
	err := p.DB.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (p *postRepository) Store(ctx context.Context, post *domain.Post) error {
	postModel := model.NewPostFromDomain(post)
	if err := p.DB.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}

	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (p *postRepository) Update(ctx context.Context, post *domain.Post) error {
	postModel := model.NewPostFromDomain(post)
	result := p.DB.WithContext(ctx).Model(postModel).
		Select("title", "content", "draft", "auto_reply", "reply_after", "updated_at").
		Updates(postModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (p *postRepository) Delete(ctx context.Context, id int64) error {
	result := p.DB.WithContext(ctx).Delete(&model.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
