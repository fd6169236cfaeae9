package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/store"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func TestMemory_SaveUpdate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()

	sess := &store.Session{ID: "g1", Board: game.NewBoard(words.MustParse("CRANE"))}
	require.NoError(t, m.Save(ctx, sess))

	err := m.Update(ctx, "g1", func(s *store.Session) error {
		_, err := s.Board.Submit(words.MustParse("SLATE"))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Board.Turn())

	boom := errors.New("boom")
	assert.ErrorIs(t, m.Update(ctx, "g1", func(*store.Session) error { return boom }), boom)

	assert.ErrorIs(t, m.Update(ctx, "nope", func(*store.Session) error { return nil }), store.ErrNotFound)
}

func TestMemory_UpdateSerializesBoards(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	require.NoError(t, m.Save(ctx, &store.Session{ID: "g", Board: game.NewBoard(words.MustParse("CRANE"))}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Update(ctx, "g", func(s *store.Session) error {
				_, err := s.Board.Submit(words.MustParse("SLATE"))
				return err
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, game.TurnLimit, accepted)
}
