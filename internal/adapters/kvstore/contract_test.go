package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

// runStoreContract exercises the behavior every KeyValueStore must share.
// The store must be empty when passed in.
func runStoreContract(t *testing.T, store domain.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get on missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "prayer_1999-01-01")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "prayer_2024-01-01", `{"fajr":{"performed":true,"withJamat":false}}`))

		val, err := store.Get(ctx, "prayer_2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, `{"fajr":{"performed":true,"withJamat":false}}`, val)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "prayer_2024-01-02", "a"))
		require.NoError(t, store.Set(ctx, "prayer_2024-01-02", "b"))

		val, err := store.Get(ctx, "prayer_2024-01-02")
		require.NoError(t, err)
		assert.Equal(t, "b", val)
	})

	t.Run("Keys filters by prefix and sorts", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "settings_theme", "dark"))
		require.NoError(t, store.Set(ctx, "prayer%_weird", "x"))

		keys, err := store.Keys(ctx, "prayer_")
		require.NoError(t, err)
		assert.Equal(t, []string{"prayer_2024-01-01", "prayer_2024-01-02"}, keys)
	})

	t.Run("Keys matches the prefix case-sensitively", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "PRAYER_2024-01-01", "upper"))
		require.NoError(t, store.Set(ctx, "user:ABC:prayer_2024-01-01", "other user"))

		keys, err := store.Keys(ctx, "prayer_")
		require.NoError(t, err)
		assert.Equal(t, []string{"prayer_2024-01-01", "prayer_2024-01-02"}, keys)

		keys, err = store.Keys(ctx, "user:abc:prayer_")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("MultiGet omits missing keys", func(t *testing.T) {
		values, err := store.MultiGet(ctx, []string{"prayer_2024-01-01", "prayer_2024-01-02", "prayer_2030-01-01"})
		require.NoError(t, err)
		assert.Len(t, values, 2)
		assert.Equal(t, "b", values["prayer_2024-01-02"])

		empty, err := store.MultiGet(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Update creates missing key", func(t *testing.T) {
		err := store.Update(ctx, "counter", func(current string, exists bool) (string, error) {
			assert.False(t, exists)
			assert.Equal(t, "", current)
			return "0", nil
		})
		require.NoError(t, err)

		val, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, "0", val)
	})

	t.Run("Update error leaves value untouched", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Update(ctx, "counter", func(current string, exists bool) (string, error) {
			return "", boom
		})
		assert.ErrorIs(t, err, boom)

		val, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, "0", val)
	})

	t.Run("Concurrent updates are not lost", func(t *testing.T) {
		const workers = 20

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Update(ctx, "counter", func(current string, exists bool) (string, error) {
					var n int
					fmt.Sscanf(current, "%d", &n)
					return fmt.Sprintf("%d", n+1), nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		val, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", workers), val)
	})
}
