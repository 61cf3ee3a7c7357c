package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Contract(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "salat.db"))
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)
}
