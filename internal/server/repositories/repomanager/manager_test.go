package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authservice/internal/server/models"
	"github.com/dmitrijs2005/authservice/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGooseUp(t *testing.T, fn func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error) {
	t.Helper()
	orig := gooseUp
	gooseUp = fn
	t.Cleanup(func() { gooseUp = orig })
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	pg := NewPostgresRepositoryManager()
	assert.IsType(t, &users.SQLRepository{}, pg.Users(db))

	lite := NewSQLiteRepositoryManager()
	assert.IsType(t, &users.SQLRepository{}, lite.Users(db))
}

func TestRunMigrations_PassesDialectAndFiles(t *testing.T) {
	tests := []struct {
		name    string
		manager RepositoryManager
		dialect goose.Dialect
	}{
		{name: "postgres", manager: NewPostgresRepositoryManager(), dialect: goose.DialectPostgres},
		{name: "sqlite", manager: NewSQLiteRepositoryManager(), dialect: goose.DialectSQLite3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubGooseUp(t, func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
				assert.Equal(t, tt.dialect, dialect)
				_, err := fs.Stat(fsys, "00001_create_users.sql")
				return err
			})

			require.NoError(t, tt.manager.RunMigrations(context.Background(), newDB(t)))
		})
	}
}

func TestRunMigrations_Error(t *testing.T) {
	stubGooseUp(t, func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), newDB(t))
	assert.EqualError(t, err, "boom")
}

func TestOpen_SQLiteMemory(t *testing.T) {
	ctx := context.Background()

	db, manager, err := Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.IsType(t, &SQLiteRepositoryManager{}, manager)

	repo := manager.Users(db)
	created, err := repo.Create(ctx, &models.User{Email: "alice@example.com", Active: true})
	require.NoError(t, err)

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestOpen_MigrationFailureClosesDB(t *testing.T) {
	stubGooseUp(t, func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		return errors.New("bad migration")
	})

	_, _, err := Open(context.Background(), "sqlite::memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run migrations: bad migration")
}
