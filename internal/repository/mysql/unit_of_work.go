package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/domain"
)

// unitOfWork wraps one gorm transaction and hands out repositories bound to it.
type unitOfWork struct {
	tx   *gorm.DB
	done bool

	users    domain.UserRepository
	posts    domain.PostRepository
	comments domain.CommentRepository
	likes    domain.LikeRepository
}

var _ domain.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Users() domain.UserRepository       { return u.users }
func (u *unitOfWork) Posts() domain.PostRepository       { return u.posts }
func (u *unitOfWork) Comments() domain.CommentRepository { return u.comments }
func (u *unitOfWork) Likes() domain.LikeRepository       { return u.likes }

func (u *unitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Commit().Error
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}

// Close rolls back when Commit was never reached, so services can defer it.
func (u *unitOfWork) Close() error {
	if u.done {
		return nil
	}
	return u.Rollback()
}

type unitOfWorkFactory struct {
	DB *gorm.DB
}

var _ domain.UnitOfWorkFactory = (*unitOfWorkFactory)(nil)

// NewUnitOfWorkFactory will create an implementation of domain.UnitOfWorkFactory
// backed by gorm transactions.
func NewUnitOfWorkFactory(db *gorm.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{
		DB: db,
	}
}

func (f *unitOfWorkFactory) Begin(ctx context.Context) (domain.UnitOfWork, error) {
	tx := f.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &unitOfWork{
		tx:       tx,
		users:    NewUserRepository(tx),
		posts:    NewPostRepository(tx),
		comments: NewCommentRepository(tx),
		likes:    NewLikeRepository(tx),
	}, nil
}
