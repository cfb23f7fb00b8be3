package jsonfix

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := NewSession()
		require.Equal(t, StateEmpty, s.Current().Document.State)
		require.Zero(t, s.Current().Seq)
	})

	t.Run("check then repair", func(t *testing.T) {
		s := NewSession()
		snap, ok := s.Check(`{a:1,}`)
		require.True(t, ok)
		require.Equal(t, StateInvalid, snap.Document.State)

		snap, ok = s.Repair()
		require.True(t, ok)
		require.Equal(t, StateRepaired, snap.Document.State)
		require.Equal(t, `{"a":1}`, s.Current().Document.Input)
	})

	t.Run("stale results are dropped", func(t *testing.T) {
		s := NewSession()
		first := s.begin()
		second := s.begin()
		require.Greater(t, second.Seq, first.Seq)
		require.NotEqual(t, first.ID, second.ID)

		second.Document = Check(`[2]`)
		first.Document = Check(`[1]`)
		require.True(t, s.commit(second))
		require.False(t, s.commit(first))
		require.Equal(t, `[2]`, s.Current().Document.Input)
	})

	t.Run("repair waits for a pending check", func(t *testing.T) {
		s := NewSession()
		_, ok := s.Check(`{a:1}`)
		require.True(t, ok)

		s.mu.Lock()
		pending := s.begin()
		s.mu.Unlock()

		snap, ok := s.Repair()
		require.False(t, ok)
		require.Equal(t, StateInvalid, snap.Document.State)
		require.Equal(t, `{a:1}`, s.Current().Document.Input)

		pending.Document = Check(`[1,]`)
		require.True(t, s.commit(pending))

		snap, ok = s.Repair()
		require.True(t, ok)
		require.Equal(t, `[1]`, snap.Document.Input)
		require.Equal(t, StateRepaired, s.Current().Document.State)
	})

	t.Run("concurrent checks keep the latest request", func(t *testing.T) {
		s := NewSession()
		var wg sync.WaitGroup
		for range 50 {
			wg.Go(func() {
				s.Check(`{"a":1}`)
			})
		}
		wg.Wait()
		require.EqualValues(t, 50, s.Current().Seq)
		require.Equal(t, StateValid, s.Current().Document.State)
	})
}
