package domain

import "context"

// UnitOfWork groups the repositories behind a single transactional session.
// Repositories obtained from one unit of work share the same transaction, so
// multi-entity writes in one service call are atomic.
//
// Commit is always explicit. Close rolls the transaction back when it has not
// been committed, so callers can `defer uow.Close()` and let an early error
// return discard the changes.
type UnitOfWork interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository

	Commit() error
	Rollback() error
	Close() error
}

// UnitOfWorkFactory opens a new transactional scope per service operation.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
