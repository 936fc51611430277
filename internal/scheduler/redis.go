// Package scheduler implements the deferred auto-reply queue on a Redis
// sorted set: members are comment IDs, scores are due timestamps. Scheduling
// survives process restarts, and the worker that drains the queue re-enters
// the comment service outside any request context.
package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/GhostMEn20034/small-social-network/domain"
)

const (
	QueueKey = "autoreply:queue"

	pollInterval = 1 * time.Second
)

type redisScheduler struct {
	client *redis.Client
	now    func() time.Time
}

var _ domain.AutoReplyScheduler = (*redisScheduler)(nil)

// NewRedisScheduler will create an implementation of domain.AutoReplyScheduler
func NewRedisScheduler(client *redis.Client) *redisScheduler {
	return &redisScheduler{
		client: client,
		now:    time.Now,
	}
}

func (s *redisScheduler) Schedule(ctx context.Context, commentID int64, delay time.Duration) error {
	due := s.now().Add(delay)
	return s.client.ZAdd(ctx, QueueKey, redis.Z{
		Score:  float64(due.Unix()),
		Member: strconv.FormatInt(commentID, 10),
	}).Err()
}

// AutoReplyWorker drains due tasks from the queue and posts the generated
// replies through the comment service.
type AutoReplyWorker struct {
	client   *redis.Client
	comments domain.CommentUsecase
	now      func() time.Time
}

func NewAutoReplyWorker(client *redis.Client, comments domain.CommentUsecase) *AutoReplyWorker {
	return &AutoReplyWorker{
		client:   client,
		comments: comments,
		now:      time.Now,
	}
}

func (w *AutoReplyWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.drainDue(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down AutoReplyWorker")
			return
		}
	}
}

func (w *AutoReplyWorker) drainDue(ctx context.Context) {
	members, err := w.client.ZRangeByScore(ctx, QueueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(w.now().Unix(), 10),
	}).Result()
	if err != nil {
		logrus.Errorf("failed to read auto-reply queue: %v", err)
		return
	}

	for _, member := range members {
		// only the remover of a member processes it
		removed, err := w.client.ZRem(ctx, QueueKey, member).Result()
		if err != nil {
			logrus.Errorf("failed to remove auto-reply task %s: %v", member, err)
			continue
		}
		if removed == 0 {
			continue
		}

		commentID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			logrus.Errorf("dropping malformed auto-reply task %q: %v", member, err)
			continue
		}

		if err := w.comments.AutoReply(ctx, commentID); err != nil {
			logrus.Errorf("auto-reply for comment %d failed: %v", commentID, err)
		}
	}
}
