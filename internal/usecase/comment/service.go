package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GhostMEn20034/small-social-network/domain"
)

const autoReplyInstruction = "Given a post title and post text.\n" +
	"You need to answer the comment. Answer should be compact.\n" +
	"DON'T USE LISTS, TABLES, ETC. \n"

// Service orchestrates moderation, ownership checks, reply-tree reads, like
// toggling, blocking, deferred auto-replies and per-owner analytics. It holds
// no state across calls: every operation opens one unit-of-work scope.
type Service struct {
	uowFactory domain.UnitOfWorkFactory
	moderator  domain.ContentModerator
	generator  domain.ReplyGenerator
	scheduler  domain.AutoReplyScheduler
}

var _ domain.CommentUsecase = (*Service)(nil)

// NewService will create a new comment service object
func NewService(f domain.UnitOfWorkFactory, m domain.ContentModerator,
	g domain.ReplyGenerator, s domain.AutoReplyScheduler) *Service {
	return &Service{
		uowFactory: f,
		moderator:  m,
		generator:  g,
		scheduler:  s,
	}
}

// Create moderates the content first, then validates the post and optional
// parent inside one transaction. Flagged content is stored blocked instead of
// being rejected. Scheduling happens after commit so the deferred task can
// look the comment up later.
func (s *Service) Create(ctx context.Context, user domain.User, content string, postID int64, parentID *int64) (*domain.Comment, error) {
	safe := s.moderator.ModerateText(ctx, content)

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	post, err := uow.Posts().GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if _, err := uow.Comments().GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	comment := &domain.Comment{
		Content:  content,
		PostID:   postID,
		OwnerID:  user.ID,
		ParentID: parentID,
	}
	if !safe {
		comment.Block(time.Now())
	}

	if err := uow.Comments().Store(ctx, comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if !comment.Blocked && post.AutoReply {
		if err := s.scheduler.Schedule(ctx, comment.ID, post.AutoReplyDelay()); err != nil {
			// the comment is already persisted, an unscheduled reply is not
			// worth failing the request over
			logrus.Errorf("failed to schedule auto-reply for comment %d: %v", comment.ID, err)
		}
	}

	return comment, nil
}

// AutoReply is re-entered by the scheduler worker, never by a user request.
// Generated replies are attributed to the post's author and skip moderation;
// they never trigger scheduling themselves, so no recursion guard is needed.
func (s *Service) AutoReply(ctx context.Context, commentID int64) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	comment, err := uow.Comments().GetWithPost(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// the target was deleted before the delay elapsed
			logrus.Warnf("auto-reply target comment %d no longer exists, skipping", commentID)
			return nil
		}
		return err
	}

	prompt := autoReplyInstruction + buildPrompt(comment)
	reply, err := s.generator.GenerateReply(ctx, prompt)
	if err != nil {
		return err
	}

	parentID := comment.ID
	generated := &domain.Comment{
		Content:  reply,
		PostID:   comment.PostID,
		OwnerID:  comment.Post.AuthorID,
		ParentID: &parentID,
	}
	if err := uow.Comments().Store(ctx, generated); err != nil {
		return err
	}
	return uow.Commit()
}

// buildPrompt requires a comment with its post joined.
func buildPrompt(comment *domain.Comment) string {
	return fmt.Sprintf(
		"Post Title: %s\nPost Text: %s\n\nComment: %s\n",
		comment.Post.Title, comment.Post.Content, comment.Content,
	)
}

func (s *Service) FetchTopLevel(ctx context.Context, postID int64) ([]domain.Comment, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	return uow.Comments().FetchTopLevel(ctx, postID)
}

func (s *Service) GetDetails(ctx context.Context, commentID int64) (*domain.Comment, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	comment, err := uow.Comments().GetWithReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.fillOwnerDetails(ctx, uow.Users(), comment); err != nil {
		logrus.Warnf("failed to fill comment owners: %v", err)
	}
	return comment, nil
}

// fillOwnerDetails resolves the owners of the comment and its replies with a
// single batched lookup.
func (s *Service) fillOwnerDetails(ctx context.Context, users domain.UserRepository, comment *domain.Comment) error {
	mapUsers := map[int64]domain.User{}
	mapUsers[comment.OwnerID] = domain.User{}
	for _, reply := range comment.Replies {
		mapUsers[reply.OwnerID] = domain.User{}
	}

	ownerIDs := make([]int64, 0, len(mapUsers))
	for ownerID := range mapUsers {
		ownerIDs = append(ownerIDs, ownerID)
	}

	owners, err := users.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return err
	}
	for _, owner := range owners {
		mapUsers[owner.ID] = owner
	}

	if owner, ok := mapUsers[comment.OwnerID]; ok && owner.ID != 0 {
		comment.Owner = &owner
	}
	for _, reply := range comment.Replies {
		if owner, ok := mapUsers[reply.OwnerID]; ok && owner.ID != 0 {
			owner := owner
			reply.Owner = &owner
		}
	}
	return nil
}

// Update re-moderates the new content exactly like creation. The blocked
// flag is monotonic: an edit can set it, never clear it.
func (s *Service) Update(ctx context.Context, commentID int64, user domain.User, content string) (*domain.Comment, error) {
	safe := s.moderator.ModerateText(ctx, content)

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	comment, err := uow.Comments().GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != user.ID {
		return nil, domain.ErrForbidden
	}

	comment.Content = content
	if !safe {
		comment.Block(time.Now())
	}

	if err := uow.Comments().Update(ctx, comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleLike inserts a like and bumps the counter on the first call, and
// undoes both on the next one. Calling it twice is a net no-op.
func (s *Service) ToggleLike(ctx context.Context, commentID int64, user domain.User) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	if _, err := uow.Comments().GetByID(ctx, commentID); err != nil {
		return err
	}

	like, err := uow.Likes().GetByCommentAndOwner(ctx, commentID, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := uow.Likes().Store(ctx, &domain.Like{CommentID: commentID, OwnerID: user.ID}); err != nil {
			return err
		}
		if err := uow.Comments().AddLikes(ctx, commentID, 1); err != nil {
			return err
		}
		return uow.Commit()
	} else if err != nil {
		return err
	}

	if err := uow.Likes().Delete(ctx, like.ID); err != nil {
		return err
	}
	if err := uow.Comments().AddLikes(ctx, commentID, -1); err != nil {
		return err
	}
	return uow.Commit()
}

// BlockComment is a post-owner action: the comment's own author cannot block
// it unless they also own the post. Existence is checked before authorization.
func (s *Service) BlockComment(ctx context.Context, commentID int64, user domain.User) (*domain.Comment, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	comment, err := uow.Comments().GetWithPost(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Post.AuthorID != user.ID {
		return nil, domain.ErrForbidden
	}

	comment.Block(time.Now())
	if err := uow.Comments().Update(ctx, comment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) Delete(ctx context.Context, commentID int64, user domain.User) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Close()

	comment, err := uow.Comments().GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != user.ID {
		return domain.ErrForbidden
	}

	if err := uow.Comments().Delete(ctx, commentID); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *Service) DailyAnalytic(ctx context.Context, rng domain.DateRange, user domain.User) ([]domain.DailyCommentStat, error) {
	if rng.From.After(rng.To) {
		return nil, domain.ErrBadParamInput
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	return uow.Comments().DailyAnalytic(ctx, user.ID, rng)
}
