package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/GhostMEn20034/small-social-network/domain"
	"github.com/GhostMEn20034/small-social-network/internal/repository/mysql"
)

var commentColumns = []string{
	"id", "content", "likes", "post_id", "owner_id",
	"parent_id", "blocked", "blocked_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

func TestCommentStore(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO `comments`").
		WillReturnResult(sqlmock.NewResult(12, 1))

	repo := mysql.NewCommentRepository(gdb)
	comment := &domain.Comment{Content: "nice post", PostID: 1, OwnerID: 2}

	err := repo.Store(context.TODO(), comment)

	require.NoError(t, err)
	assert.Equal(t, int64(12), comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentGetByID(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(commentColumns).
		AddRow(5, "a comment", 3, 1, 2, nil, false, nil, now, now)
	mock.ExpectQuery("SELECT (.+) FROM `comments` WHERE id = (.+)").
		WillReturnRows(rows)

	repo := mysql.NewCommentRepository(gdb)
	comment, err := repo.GetByID(context.TODO(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), comment.ID)
	assert.Equal(t, "a comment", comment.Content)
	assert.Equal(t, int64(3), comment.LikesCount)
	assert.Nil(t, comment.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentGetByIDNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `comments` WHERE id = (.+)").
		WillReturnRows(sqlmock.NewRows(commentColumns))

	repo := mysql.NewCommentRepository(gdb)
	_, err := repo.GetByID(context.TODO(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentFetchTopLevel(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(commentColumns).
		AddRow(1, "first", 0, 9, 2, nil, false, nil, now, now).
		AddRow(2, "second", 0, 9, 3, nil, false, nil, now.Add(time.Minute), now.Add(time.Minute))
	mock.ExpectQuery("SELECT (.+) FROM `comments` WHERE post_id = (.+) AND parent_id IS NULL AND blocked = (.+) ORDER BY created_at").
		WillReturnRows(rows)

	repo := mysql.NewCommentRepository(gdb)
	comments, err := repo.FetchTopLevel(context.TODO(), 9)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentGetWithReplies(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Now()
	parentID := int64(5)
	mock.ExpectQuery("SELECT (.+) FROM `comments` WHERE id = (.+) AND blocked = (.+)").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(5, "parent", 0, 9, 2, nil, false, nil, now, now))
	mock.ExpectQuery("SELECT (.+) FROM `comments` WHERE parent_id = (.+) AND blocked = (.+) ORDER BY created_at").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(6, "child", 0, 9, 3, parentID, false, nil, now, now))

	repo := mysql.NewCommentRepository(gdb)
	comment, err := repo.GetWithReplies(context.TODO(), 5)

	require.NoError(t, err)
	assert.Equal(t, "parent", comment.Content)
	require.Len(t, comment.Replies, 1)
	assert.Equal(t, "child", comment.Replies[0].Content)
	require.NotNil(t, comment.Replies[0].ParentID)
	assert.Equal(t, parentID, *comment.Replies[0].ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentAddLikes(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("UPDATE `comments` SET `likes`=likes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := mysql.NewCommentRepository(gdb)

	assert.NoError(t, repo.AddLikes(context.TODO(), 5, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentUpdateNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("UPDATE `comments`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := mysql.NewCommentRepository(gdb)
	err := repo.Update(context.TODO(), &domain.Comment{ID: 404, Content: "x"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDelete(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM `comments`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := mysql.NewCommentRepository(gdb)

	assert.NoError(t, repo.Delete(context.TODO(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM `comments`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := mysql.NewCommentRepository(gdb)
	err := repo.Delete(context.TODO(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDailyAnalytic(t *testing.T) {
	gdb, mock := newMockDB(t)

	day1 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"date", "total_comments", "blocked_comments"}).
		AddRow(day1, 4, 1).
		AddRow(day2, 2, 0)
	mock.ExpectQuery("SELECT DATE\\(comments.created_at\\)").
		WithArgs(int64(7), "2025-01-10", "2025-01-11").
		WillReturnRows(rows)

	repo := mysql.NewCommentRepository(gdb)
	rng := domain.DateRange{From: day1, To: day2}
	stats, err := repo.DailyAnalytic(context.TODO(), 7, rng)

	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, day1, stats[0].Date)
	assert.Equal(t, int64(4), stats[0].TotalComments)
	assert.Equal(t, int64(1), stats[0].BlockedComments)
	assert.Equal(t, day2, stats[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}
