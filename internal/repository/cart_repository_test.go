package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

func TestGetActiveCartGuestMatchesOnlyActiveCarts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "session_id", "status", "created_at"}).
		AddRow(4, 0, "guest-1", "ACTIVE", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, COALESCE(user_id, 0), COALESCE(session_id, ''), status, created_at FROM carts WHERE session_id = ? AND status = ?`)).
		WithArgs("guest-1", string(entity.CartActive)).
		WillReturnRows(rows)

	cart, err := NewCartRepository(db).GetActiveCart(context.Background(), 0, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), cart.ID)
	assert.Equal(t, entity.CartActive, cart.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCartUserMatchesOnlyActiveCarts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "session_id", "status", "created_at"}).
		AddRow(7, 9, "", "ACTIVE", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, COALESCE(user_id, 0), COALESCE(session_id, ''), status, created_at FROM carts WHERE user_id = ? AND status = ?`)).
		WithArgs(int64(9), string(entity.CartActive)).
		WillReturnRows(rows)

	cart, err := NewCartRepository(db).GetActiveCart(context.Background(), 9, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
