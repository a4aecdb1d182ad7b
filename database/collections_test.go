package database

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS collections (
	collection_key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func TestKVStoreLoadMissingKey(t *testing.T) {
	kv := NewKVStore(openTestDB(t))

	data, err := kv.Load("products")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestKVStoreSaveOverwrites(t *testing.T) {
	kv := NewKVStore(openTestDB(t))

	require.NoError(t, kv.Save("products", []byte(`[{"id":"a"}]`)))
	require.NoError(t, kv.Save("products", []byte(`[{"id":"b"}]`)))

	data, err := kv.Load("products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(data))
}

func TestKVStoreSaveAll(t *testing.T) {
	kv := NewKVStore(openTestDB(t))

	err := kv.SaveAll(map[string][]byte{
		"sales":    []byte(`[{"id":"s1"}]`),
		"products": []byte(`[{"id":"p1"}]`),
	})
	require.NoError(t, err)

	sales, err := kv.Load("sales")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(sales))

	infos, err := kv.ListCollections()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "products", infos[0].Key)
	assert.Equal(t, "sales", infos[1].Key)
	assert.Equal(t, len(`[{"id":"p1"}]`), infos[0].Size)
}

func TestKVStoreClear(t *testing.T) {
	kv := NewKVStore(openTestDB(t))
	require.NoError(t, kv.Save("products", []byte(`[]`)))
	require.NoError(t, kv.Save("sales", []byte(`[]`)))
	require.NoError(t, kv.Save("expenses", []byte(`[]`)))

	require.NoError(t, kv.Clear("products", "sales"))
	infos, err := kv.ListCollections()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "expenses", infos[0].Key)

	require.NoError(t, kv.Clear())
	infos, err = kv.ListCollections()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestKVStoreSaveAllFailsOnClosedDB(t *testing.T) {
	db := openTestDB(t)
	kv := NewKVStore(db)
	require.NoError(t, db.Close())

	err := kv.SaveAll(map[string][]byte{"products": []byte(`[]`)})
	assert.Error(t, err)
}
