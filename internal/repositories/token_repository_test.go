package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTokensTestRepository(t *testing.T) (*tokensRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewTokensRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestTokensRepository_Save(t *testing.T) {
	repo, mock, cleanup := setupTokensTestRepository(t)
	defer cleanup()

	expiresAt := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO user_tokens`).
		WithArgs(7, "refresh-token", expiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), 7, "refresh-token", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensRepository_GetByUserID(t *testing.T) {
	repo, mock, cleanup := setupTokensTestRepository(t)
	defer cleanup()

	expiresAt := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at"}).
		AddRow(1, 7, "refresh-token", expiresAt)

	mock.ExpectQuery(`SELECT .+ FROM user_tokens WHERE user_id = \?`).
		WithArgs(7).
		WillReturnRows(rows)

	token, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token", token.Token)
	assert.Equal(t, expiresAt, token.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensRepository_GetByUserID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTokensTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM user_tokens WHERE user_id = \?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUserID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensRepository_DeleteExpired(t *testing.T) {
	repo, mock, cleanup := setupTokensTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM user_tokens WHERE expires_at < NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
