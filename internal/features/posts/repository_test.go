package posts

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serotonyl.ru/repost-bot/internal/common"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCreatePost(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	topic := int64(7)

	mock.ExpectQuery("INSERT INTO posts").WithArgs(int64(-5), int64(42), int64(1), &topic).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))

	post, err := repo.Create(context.Background(), -5, 42, 1, &topic)
	require.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
	assert.Equal(t, int64(42), post.MessageID)
	require.NotNil(t, post.TopicID)
	assert.Equal(t, int64(7), *post.TopicID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostTwiceIsRecorded(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	// ON CONFLICT DO NOTHING: RETURNING пуст
	mock.ExpectQuery("INSERT INTO posts").WithArgs(int64(-5), int64(42), int64(1), (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}))

	_, err := repo.Create(context.Background(), -5, 42, 1, nil)
	assert.ErrorIs(t, err, common.ErrAlreadyRecorded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByMessageLoadsOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	now := time.Now()

	mock.ExpectQuery("FROM posts p").WithArgs(int64(-5), int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "chat_id", "message_id", "topic_id", "user_id", "created_at",
			"telegram_id", "username", "user_created_at",
		}).AddRow(int64(10), int64(-5), int64(42), (*int64)(nil), int64(1), now, int64(100), "author", now))

	post, err := repo.FindByMessage(context.Background(), -5, 42)
	require.NoError(t, err)
	require.NotNil(t, post.Owner)
	assert.Equal(t, int64(1), post.Owner.ID)
	assert.Equal(t, int64(100), post.Owner.TelegramID)
	assert.Equal(t, "author", post.Owner.Username)
	assert.Nil(t, post.TopicID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByMessageNotAPost(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery("FROM posts p").WithArgs(int64(-5), int64(43)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.FindByMessage(context.Background(), -5, 43)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTryAddReaction(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery("INSERT INTO reactions").WithArgs(int64(10), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery("INSERT INTO reactions").WithArgs(int64(10), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}))

	r, err := repo.TryAddReaction(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.PostID)
	assert.Equal(t, int64(2), r.ReactorUserID)

	_, err = repo.TryAddReaction(context.Background(), 10, 2)
	assert.ErrorIs(t, err, common.ErrAlreadyRecorded)
	require.NoError(t, mock.ExpectationsWereMet())
}
