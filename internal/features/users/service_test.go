package users

import (
	"context"
	"math"
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

func userRows(id, telegramID int64, username string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "telegram_id", "username", "created_at"}).
		AddRow(id, telegramID, username, time.Now())
}

func TestResolveUserUpdatesHandleInPlace(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	// Оба вызова идут в один upsert по telegram_id: второй только меняет username.
	mock.ExpectQuery("INSERT INTO users").WithArgs(int64(100), "old").
		WillReturnRows(userRows(1, 100, "old"))
	mock.ExpectQuery("INSERT INTO users").WithArgs(int64(100), "new").
		WillReturnRows(userRows(1, 100, "new"))

	first, err := svc.ResolveUser(context.Background(), 100, "old")
	require.NoError(t, err)
	second, err := svc.ResolveUser(context.Background(), 100, "@new")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new", second.Username)
	assert.Equal(t, "@new", second.DisplayName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveChatUserCreatesScoreRow(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery("INSERT INTO users").WithArgs(int64(100), "john").
		WillReturnRows(userRows(1, 100, "john"))
	mock.ExpectExec("INSERT INTO chat_users").WithArgs(int64(-5), int64(1), 0.0, 1.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("FROM chat_users").WithArgs(int64(-5), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"chat_id", "user_id", "points", "weight"}).
			AddRow(int64(-5), int64(1), 0.0, 1.0))

	user, chatUser, err := svc.ResolveChatUser(context.Background(), -5, 100, "john")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(-5), chatUser.ChatID)
	assert.Equal(t, DefaultPoints, chatUser.Points)
	assert.Equal(t, DefaultWeight, chatUser.Weight)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWeightRejectsInvalid(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := svc.SetWeight(context.Background(), -5, "john", w)
		assert.ErrorIs(t, err, common.ErrInvalidWeight, "weight=%v", w)
	}
	// до БД дело не доходит
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWeightUnknownUser(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery("FROM users WHERE LOWER").WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "telegram_id", "username", "created_at"}))

	_, err := svc.SetWeight(context.Background(), -5, "@ghost", 2)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetWeightUpserts(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery("FROM users WHERE LOWER").WithArgs("john").
		WillReturnRows(userRows(1, 100, "john"))
	mock.ExpectExec("INSERT INTO chat_users").WithArgs(int64(-5), int64(1), 0.0, 1.5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	user, err := svc.SetWeight(context.Background(), -5, "@john", 1.5)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.TelegramID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight("1.5")
	require.NoError(t, err)
	assert.Equal(t, 1.5, w)

	w, err = ParseWeight("0,5")
	require.NoError(t, err)
	assert.Equal(t, 0.5, w)

	for _, raw := range []string{"", "abc", "0", "-2", "NaN", "Inf"} {
		_, err := ParseWeight(raw)
		assert.ErrorIs(t, err, common.ErrInvalidWeight, "raw=%q", raw)
	}
}

func TestGetByUsernamePrefersExactThenNewest(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	mock.ExpectQuery(`LOWER\(username\) = LOWER\(\$1\) ORDER BY \(username = \$1\) DESC, updated_at DESC, id DESC LIMIT 1`).
		WithArgs("John").
		WillReturnRows(userRows(7, 700, "John"))

	user, err := repo.GetByUsername(context.Background(), "John")
	require.NoError(t, err)
	assert.Equal(t, int64(700), user.TelegramID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockChatUsersSortsIDs(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	ids := []int64{3, 9}

	mock.ExpectExec("INSERT INTO chat_users").WithArgs(int64(-5), ids, 0.0, 1.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("ORDER BY user_id\\s+FOR UPDATE").WithArgs(int64(-5), ids).
		WillReturnRows(pgxmock.NewRows([]string{"chat_id", "user_id", "points", "weight"}).
			AddRow(int64(-5), int64(3), 1.5, 1.0).
			AddRow(int64(-5), int64(9), -2.0, 0.5))

	locked, err := repo.LockChatUsers(context.Background(), -5, 9, 3, 9)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, 0.5, locked[9].Weight)
	assert.Equal(t, 1.5, locked[3].Points)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockChatUsersMissingRow(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)
	ids := []int64{3, 9}

	mock.ExpectExec("INSERT INTO chat_users").WithArgs(int64(-5), ids, 0.0, 1.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("FOR UPDATE").WithArgs(int64(-5), ids).
		WillReturnRows(pgxmock.NewRows([]string{"chat_id", "user_id", "points", "weight"}).
			AddRow(int64(-5), int64(3), 0.0, 1.0))

	_, err := repo.LockChatUsers(context.Background(), -5, 3, 9)
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
