package users_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/authservice/internal/common"
	"github.com/dmitrijs2005/authservice/internal/server/models"
	"github.com/dmitrijs2005/authservice/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authservice/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseRepository runs the same behaviour checks against any backend.
func exerciseRepository(t *testing.T, repo users.Repository) {
	ctx := context.Background()
	hash := "$2a$04$abcdefghijklmnopqrstuv"

	created, err := repo.Create(ctx, &models.User{Email: "alice@example.com", HashedPassword: &hash, Active: true})
	require.NoError(t, err)

	t.Run("lookup is exact match", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.True(t, got.Active)
		assert.Nil(t, got.LastLoginDate)
		assert.Nil(t, got.LastActiveDate)
		require.NotNil(t, got.HashedPassword)
		assert.Equal(t, hash, *got.HashedPassword)

		_, err = repo.GetUserByEmail(ctx, "ALICE@example.com")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, &models.User{Email: "alice@example.com", Active: true})
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	})

	t.Run("update persists mutable fields", func(t *testing.T) {
		login := time.Now().UTC().Truncate(time.Second)
		newHash := "$2a$04$zyxwvutsrqponmlkjihgfe"

		user, err := repo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		user.HashedPassword = &newHash
		user.LastLoginDate = &login
		user.Active = false
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, newHash, *got.HashedPassword)
		assert.False(t, got.Active)
		require.NotNil(t, got.LastLoginDate)
		assert.True(t, login.Equal(*got.LastLoginDate), "got %v want %v", *got.LastLoginDate, login)
	})

	t.Run("update unknown id", func(t *testing.T) {
		err := repo.Update(ctx, &models.User{ID: "00000000-0000-0000-0000-000000000000"})
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("concurrent creates with one email", func(t *testing.T) {
		var (
			wg        sync.WaitGroup
			succeeded atomic.Int32
			conflicts atomic.Int32
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, &models.User{Email: "race@example.com", Active: true})
				switch {
				case err == nil:
					succeeded.Add(1)
				case errors.Is(err, common.ErrorAlreadyExists):
					conflicts.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), succeeded.Load())
		assert.Equal(t, int32(7), conflicts.Load())
	})
}

func TestSQLiteRepository(t *testing.T) {
	db, manager, err := repomanager.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exerciseRepository(t, manager.Users(db))
}
