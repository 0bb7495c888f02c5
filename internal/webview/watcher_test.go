package webview

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Matches(t *testing.T) {
	policy := NewPolicy("https://bank.example/done")

	t.Run("prefix match", func(t *testing.T) {
		assert.True(t, policy.Matches("https://bank.example/done"))
		assert.True(t, policy.Matches("https://bank.example/done?x=1"))
		assert.True(t, policy.Matches("https://bank.example/done/extra"))
	})

	t.Run("non-matching url", func(t *testing.T) {
		assert.False(t, policy.Matches("https://bank.example/other"))
		assert.False(t, policy.Matches("https://evil.example/https://bank.example/done"))
	})

	t.Run("multiple redirect urls", func(t *testing.T) {
		multi := NewPolicy("https://bank.example/done", "https://bank.example/finish")
		assert.True(t, multi.Matches("https://bank.example/finish?ok=1"))
	})

	t.Run("empty redirect url never matches", func(t *testing.T) {
		empty := NewPolicy("")
		assert.False(t, empty.Matches("https://bank.example/done"))
	})
}

func TestWatcher_ShouldProcessRequest(t *testing.T) {
	t.Run("non-matching request leaves the watcher awaiting", func(t *testing.T) {
		watcher := NewWatcher(NewPolicy("https://bank.example/done"), nil)

		assert.False(t, watcher.ShouldProcessRequest("https://bank.example/other"))
		assert.Equal(t, StateAwaitingRedirect, watcher.State())
	})

	t.Run("matching request completes and fires the signal once", func(t *testing.T) {
		passed := 0
		watcher := NewWatcher(NewPolicy("https://bank.example/done"), func() { passed++ })

		assert.True(t, watcher.ShouldProcessRequest("https://bank.example/done?x=1"))
		assert.Equal(t, StateCompleted, watcher.State())
		assert.Equal(t, 1, passed)

		// The guard keeps repeated matches from processing or signaling again.
		assert.False(t, watcher.ShouldProcessRequest("https://bank.example/done?x=1"))
		assert.False(t, watcher.ShouldProcessRequest("https://bank.example/done?x=2"))
		assert.Equal(t, 1, passed)
	})

	t.Run("signal fires at most once under concurrent navigation callbacks", func(t *testing.T) {
		var mu sync.Mutex
		passed := 0
		watcher := NewWatcher(NewPolicy("https://bank.example/done"), func() {
			mu.Lock()
			passed++
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				watcher.ShouldProcessRequest("https://bank.example/done?attempt=1")
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, passed)
		assert.Equal(t, StateCompleted, watcher.State())
	})

	t.Run("nil listener is allowed", func(t *testing.T) {
		watcher := NewWatcher(NewPolicy("https://bank.example/done"), nil)
		assert.True(t, watcher.ShouldProcessRequest("https://bank.example/done"))
	})
}
