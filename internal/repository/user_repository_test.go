package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

func TestUserRepositoryFindByEmailIgnoresCase(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "phone", "role", "active", "last_login", "created_at", "updated_at"}).
		AddRow("u-1", "ze@example.com", "hash", "Ze", nil, string(models.RoleBarber), true, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1) LIMIT 1")).
		WithArgs("ZE@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "ZE@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleBarber, user.Role)
	assert.Nil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	ts := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET last_login").WithArgs("u-1", ts).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastLogin(context.Background(), "u-1", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}
