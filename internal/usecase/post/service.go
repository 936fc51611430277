package post

import (
	"context"
	"fmt"

	"github.com/GhostMEn20034/small-social-network/domain"
)

// Service implements post management. Posts are thin CRUD compared to
// comments, but share the moderation gate: a post whose text is flagged is
// rejected outright instead of being stored blocked.
type Service struct {
	uowFactory domain.UnitOfWorkFactory
	moderator  domain.ContentModerator
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(f domain.UnitOfWorkFactory, m domain.ContentModerator) *Service {
	return &Service{
		uowFactory: f,
		moderator:  m,
	}
}

func moderationText(p *domain.Post) string {
	return fmt.Sprintf("%s\n%s", p.Title, p.Content)
}

func (s *Service) Store(ctx context.Context, user domain.User, p *domain.Post) error {
	if safe := s.moderator.ModerateText(ctx, moderationText(p)); !safe {
		return domain.ErrBadParamInput
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	p.AuthorID = user.ID
	if err := uow.Posts().Store(ctx, p); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *Service) GetDetails(ctx context.Context, id int64) (domain.Post, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return domain.Post{}, err
	}
	defer uow.Close()

	return uow.Posts().GetWithAuthor(ctx, id)
}

func (s *Service) FetchOwn(ctx context.Context, user domain.User) ([]domain.Post, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	return uow.Posts().FetchByAuthor(ctx, user.ID)
}

func (s *Service) FetchAll(ctx context.Context) ([]domain.Post, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	return uow.Posts().FetchWithAuthors(ctx)
}

func (s *Service) Update(ctx context.Context, user domain.User, p *domain.Post) error {
	if safe := s.moderator.ModerateText(ctx, moderationText(p)); !safe {
		return domain.ErrBadParamInput
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	existing, err := uow.Posts().GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != user.ID {
		return domain.ErrForbidden
	}

	p.AuthorID = existing.AuthorID
	if err := uow.Posts().Update(ctx, p); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *Service) Delete(ctx context.Context, user domain.User, id int64) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	existing, err := uow.Posts().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != user.ID {
		return domain.ErrForbidden
	}

	if err := uow.Posts().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}
