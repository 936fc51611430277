package comment_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GhostMEn20034/small-social-network/domain"
)

// memStore is a shared in-memory database for the fake repositories, so state
// survives across the unit-of-work scopes a test opens.
type memStore struct {
	mu           sync.Mutex
	users        map[int64]domain.User
	posts        map[int64]domain.Post
	comments     map[int64]*domain.Comment
	commentOrder []int64
	likes        map[int64]domain.Like
	nextID       int64
	clock        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]domain.User{},
		posts:    map[int64]domain.Post{},
		comments: map[int64]*domain.Comment{},
		likes:    map[int64]domain.Like{},
		clock:    time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// tick returns a strictly increasing timestamp so insertion order is stable.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addPost(p domain.Post) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.posts[p.ID] = p
	return p
}

func (s *memStore) seedComment(c domain.Comment) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.tick()
	}
	stored := c
	s.comments[c.ID] = &stored
	s.commentOrder = append(s.commentOrder, c.ID)
	return c
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	*u = r.store.addUser(*u)
	return nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []domain.User
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

type fakePostRepo struct{ store *memStore }

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (domain.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePostRepo) GetWithAuthor(ctx context.Context, id int64) (domain.Post, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePostRepo) FetchByAuthor(_ context.Context, authorID int64) ([]domain.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []domain.Post
	for _, p := range r.store.posts {
		if p.AuthorID == authorID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *fakePostRepo) FetchWithAuthors(_ context.Context) ([]domain.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []domain.Post
	for _, p := range r.store.posts {
		res = append(res, p)
	}
	return res, nil
}

func (r *fakePostRepo) Store(_ context.Context, p *domain.Post) error {
	*p = r.store.addPost(*p)
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *domain.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.posts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.posts[p.ID] = *p
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.posts, id)
	return nil
}

type fakeCommentRepo struct{ store *memStore }

func (r *fakeCommentRepo) Store(_ context.Context, c *domain.Comment) error {
	r.store.mu.Lock()
	c.ID = r.store.id()
	c.CreatedAt = r.store.tick()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	r.store.comments[c.ID] = &stored
	r.store.commentOrder = append(r.store.commentOrder, c.ID)
	r.store.mu.Unlock()
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	res := *c
	return &res, nil
}

func (r *fakeCommentRepo) GetWithPost(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	post, ok := r.store.posts[c.PostID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Post = &post
	return c, nil
}

func (r *fakeCommentRepo) GetWithReplies(_ context.Context, id int64) (*domain.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.comments[id]
	if !ok || c.Blocked {
		return nil, domain.ErrNotFound
	}
	res := *c
	for _, cid := range r.store.commentOrder {
		child, ok := r.store.comments[cid]
		if !ok || child.Blocked || child.ParentID == nil || *child.ParentID != id {
			continue
		}
		reply := *child
		res.Replies = append(res.Replies, &reply)
	}
	return &res, nil
}

func (r *fakeCommentRepo) FetchTopLevel(_ context.Context, postID int64) ([]domain.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []domain.Comment
	for _, cid := range r.store.commentOrder {
		c, ok := r.store.comments[cid]
		if !ok || c.PostID != postID || c.ParentID != nil || c.Blocked {
			continue
		}
		res = append(res, *c)
	}
	return res, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.comments[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Content = c.Content
	existing.Blocked = c.Blocked
	existing.BlockedAt = c.BlockedAt
	existing.UpdatedAt = r.store.tick()
	return nil
}

func (r *fakeCommentRepo) AddLikes(_ context.Context, id int64, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.comments[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.LikesCount += delta
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.comments[id]; !ok {
		return domain.ErrNotFound
	}
	r.deleteSubtreeLocked(id)
	return nil
}

// deleteSubtreeLocked mimics the persistence-layer cascade.
func (r *fakeCommentRepo) deleteSubtreeLocked(id int64) {
	delete(r.store.comments, id)
	for lid, like := range r.store.likes {
		if like.CommentID == id {
			delete(r.store.likes, lid)
		}
	}
	for _, cid := range append([]int64(nil), r.store.commentOrder...) {
		child, ok := r.store.comments[cid]
		if ok && child.ParentID != nil && *child.ParentID == id {
			r.deleteSubtreeLocked(cid)
		}
	}
}

func (r *fakeCommentRepo) DailyAnalytic(_ context.Context, authorID int64, rng domain.DateRange) ([]domain.DailyCommentStat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	truncate := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	from, to := truncate(rng.From), truncate(rng.To)

	buckets := map[time.Time]*domain.DailyCommentStat{}
	for _, c := range r.store.comments {
		post, ok := r.store.posts[c.PostID]
		if !ok || post.AuthorID != authorID {
			continue
		}
		day := truncate(c.CreatedAt)
		if day.Before(from) || day.After(to) {
			continue
		}
		b, ok := buckets[day]
		if !ok {
			b = &domain.DailyCommentStat{Date: day}
			buckets[day] = b
		}
		b.TotalComments++
		if c.Blocked {
			b.BlockedComments++
		}
	}

	res := make([]domain.DailyCommentStat, 0, len(buckets))
	for _, b := range buckets {
		res = append(res, *b)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}

type fakeLikeRepo struct{ store *memStore }

func (r *fakeLikeRepo) Store(_ context.Context, l *domain.Like) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l.ID = r.store.id()
	l.CreatedAt = r.store.tick()
	r.store.likes[l.ID] = *l
	return nil
}

func (r *fakeLikeRepo) GetByCommentAndOwner(_ context.Context, commentID, ownerID int64) (domain.Like, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, l := range r.store.likes {
		if l.CommentID == commentID && l.OwnerID == ownerID {
			return l, nil
		}
	}
	return domain.Like{}, domain.ErrNotFound
}

func (r *fakeLikeRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.likes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.likes, id)
	return nil
}

// fakeUnitOfWork writes straight through to the shared store; Commit only
// counts so tests can assert an operation committed.
type fakeUnitOfWork struct {
	store     *memStore
	committed bool
}

func (u *fakeUnitOfWork) Users() domain.UserRepository       { return &fakeUserRepo{u.store} }
func (u *fakeUnitOfWork) Posts() domain.PostRepository       { return &fakePostRepo{u.store} }
func (u *fakeUnitOfWork) Comments() domain.CommentRepository { return &fakeCommentRepo{u.store} }
func (u *fakeUnitOfWork) Likes() domain.LikeRepository       { return &fakeLikeRepo{u.store} }
func (u *fakeUnitOfWork) Commit() error                      { u.committed = true; return nil }
func (u *fakeUnitOfWork) Rollback() error                    { return nil }
func (u *fakeUnitOfWork) Close() error                       { return nil }

type fakeUoWFactory struct {
	store *memStore
	open  []*fakeUnitOfWork
}

func (f *fakeUoWFactory) Begin(context.Context) (domain.UnitOfWork, error) {
	uow := &fakeUnitOfWork{store: f.store}
	f.open = append(f.open, uow)
	return uow, nil
}

type fakeModerator struct {
	unsafe map[string]bool
	calls  []string
}

func (m *fakeModerator) ModerateText(_ context.Context, text string) bool {
	m.calls = append(m.calls, text)
	return !m.unsafe[text]
}

type scheduledTask struct {
	CommentID int64
	Delay     time.Duration
}

type fakeScheduler struct {
	tasks []scheduledTask
}

func (s *fakeScheduler) Schedule(_ context.Context, commentID int64, delay time.Duration) error {
	s.tasks = append(s.tasks, scheduledTask{CommentID: commentID, Delay: delay})
	return nil
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) GenerateReply(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}
