// Package repotest содержит общий набор тестов для реализаций repository.Store.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/model"
	"notes-api/internal/repository"
)

// Factory создает пустое хранилище для одного теста
type Factory func(t *testing.T) repository.Store

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

func newNote(title, text string, at time.Time) model.Note {
	return model.Note{Title: title, Text: text, CreatedAt: at, UpdatedAt: at}
}

// Run прогоняет контракт хранилища
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a, err := store.Create(ctx, newNote("a", "1", base))
		require.NoError(t, err)
		b, err := store.Create(ctx, newNote("b", "2", base))
		require.NoError(t, err)

		assert.NotZero(t, a.ID)
		assert.Greater(t, b.ID, a.ID)
	})

	t.Run("CreateDuplicateTitle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Create(ctx, newNote("dup", "", base))
		require.NoError(t, err)

		_, err = store.Create(ctx, newNote("dup", "other", base))
		assert.ErrorIs(t, err, repository.ErrDuplicateTitle)
	})

	t.Run("FindByTitle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, newNote("Shopping", "milk", base))
		require.NoError(t, err)

		got, found, err := store.FindByTitle(ctx, "Shopping")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "milk", got.Text)
		assert.True(t, base.Equal(got.CreatedAt))
		assert.True(t, base.Equal(got.UpdatedAt))

		_, found, err = store.FindByTitle(ctx, "shopping")
		require.NoError(t, err)
		assert.False(t, found, "lookup is case-sensitive")
	})

	t.Run("FindLastUpdated", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, found, err := store.FindLastUpdated(ctx)
		require.NoError(t, err)
		assert.False(t, found)

		_, err = store.Create(ctx, newNote("a", "", base))
		require.NoError(t, err)
		_, err = store.Create(ctx, newNote("b", "", base.Add(2*time.Second)))
		require.NoError(t, err)
		_, err = store.Create(ctx, newNote("c", "", base.Add(time.Second)))
		require.NoError(t, err)

		last, found, err := store.FindLastUpdated(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "b", last.Title)
	})

	t.Run("FindLastUpdatedTieBreaksByID", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"a", "b", "c"} {
			_, err := store.Create(ctx, newNote(title, "", base))
			require.NoError(t, err)
		}

		last, found, err := store.FindLastUpdated(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "c", last.Title)
	})

	t.Run("ExistsAndDeleteByTitle", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Create(ctx, newNote("gone", "", base))
		require.NoError(t, err)

		exists, err := store.ExistsByTitle(ctx, "gone")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, store.DeleteByTitle(ctx, "gone"))

		exists, err = store.ExistsByTitle(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, exists)

		assert.NoError(t, store.DeleteByTitle(ctx, "gone"), "deleting a missing title is a no-op")
	})

	t.Run("ListOrderedByID", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		notes, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)

		for _, title := range []string{"z", "y", "x"} {
			_, err := store.Create(ctx, newNote(title, "", base))
			require.NoError(t, err)
		}

		notes, err = store.List(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "z", notes[0].Title)
		assert.Equal(t, "x", notes[2].Title)
	})

	t.Run("UpdateRenames", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, newNote("old", "text", base))
		require.NoError(t, err)

		created.Title = "new"
		created.Text = "changed"
		created.UpdatedAt = base.Add(time.Minute)
		updated, err := store.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		_, found, err := store.FindByTitle(ctx, "old")
		require.NoError(t, err)
		assert.False(t, found)

		got, found, err := store.FindByTitle(ctx, "new")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "changed", got.Text)
		assert.True(t, base.Equal(got.CreatedAt), "createdAt must not change")
		assert.True(t, base.Add(time.Minute).Equal(got.UpdatedAt))
	})

	t.Run("UpdateErrors", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.Create(ctx, newNote("first", "", base))
		require.NoError(t, err)
		_, err = store.Create(ctx, newNote("second", "", base))
		require.NoError(t, err)

		first.Title = "second"
		_, err = store.Update(ctx, first)
		assert.ErrorIs(t, err, repository.ErrDuplicateTitle)

		_, err = store.Update(ctx, model.Note{ID: 9999, Title: "ghost", UpdatedAt: base})
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	})

	t.Run("WithinTxCommits", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		err := store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
			_, err := repo.Create(ctx, newNote("kept", "", base))
			return err
		})
		require.NoError(t, err)

		exists, err := store.ExistsByTitle(ctx, "kept")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("WithinTxRollsBackOnError", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		boom := errors.New("boom")

		err := store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
			if _, err := repo.Create(ctx, newNote("discarded", "", base)); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		exists, err := store.ExistsByTitle(ctx, "discarded")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("WithinTxRollsBackOnPanic", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		assert.Panics(t, func() {
			_ = store.WithinTx(ctx, func(ctx context.Context, repo repository.NoteRepository) error {
				if _, err := repo.Create(ctx, newNote("panicked", "", base)); err != nil {
					return err
				}
				panic("boom")
			})
		})

		exists, err := store.ExistsByTitle(ctx, "panicked")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
