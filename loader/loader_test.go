package loader

import (
	"os"
	"path/filepath"
	"testing"

	"retail/database"
	"retail/store"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "retail.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitDatabase(db))
	// 2回目の適用でもエラーにならないこと
	require.NoError(t, InitDatabase(db))

	st := store.New(database.NewKVStore(db))
	st.Load()
	return st
}

func TestSeedProducts(t *testing.T) {
	st := newSeededStore(t)
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Name,Category,Price,Stock,Description\n"+
			"Tilapia,freshFish,5.00,10,Lake Volta\n"+
			"Sardines,frozenFish,2.50,40,\n"), 0644))

	n, err := SeedProducts(st, path, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, st.Products(), 2)

	n, err = SeedProducts(st, path, "utf-8")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, st.Products(), 2)
}

func TestSeedProductsSkipsMissingFile(t *testing.T) {
	st := newSeededStore(t)

	n, err := SeedProducts(st, "", "")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = SeedProducts(st, filepath.Join(t.TempDir(), "nope.csv"), "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, st.Products())
}

func TestSeedProductsBadHeader(t *testing.T) {
	st := newSeededStore(t)
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,cost\nx,1\n"), 0644))

	_, err := SeedProducts(st, path, "")
	assert.Error(t, err)
	assert.Empty(t, st.Products())
}
