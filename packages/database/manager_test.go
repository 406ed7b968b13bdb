package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustchain/trustchain/packages/testutil/testlogger"
)

func testManager(t *testing.T, engine Engine, path string) {
	m, err := NewManager(testlogger.NewLogger(t), engine, path)
	require.NoError(t, err)
	require.Equal(t, engine, m.Engine())

	batches, err := m.Store(RealmBatches)
	require.NoError(t, err)
	products, err := m.Store(RealmProducts)
	require.NoError(t, err)

	require.NoError(t, batches.Set([]byte("B1"), []byte("batch")))

	has, err := products.Has([]byte("B1"))
	require.NoError(t, err)
	require.False(t, has, "realms must not overlap")

	value, err := batches.Get([]byte("B1"))
	require.NoError(t, err)
	require.Equal(t, []byte("batch"), value)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestManagerMapDB(t *testing.T) {
	testManager(t, EngineMapDB, "")
}

func TestManagerPebble(t *testing.T) {
	testManager(t, EnginePebble, t.TempDir()+"/db")
}

func TestUnknownEngine(t *testing.T) {
	_, err := NewDB("rocksdb", t.TempDir())
	require.ErrorIs(t, err, ErrUnknownEngine)
}
