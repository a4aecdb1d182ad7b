package database

import (
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
)

// CollectionInfo は保存済みコレクションの概要です。
type CollectionInfo struct {
	Key       string `db:"collection_key" json:"key"`
	Size      int    `db:"size" json:"size"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

// KVStore は collections テーブルをキー・バリューストアとして扱います。
// 1キー = 1コレクション(JSON配列)です。
type KVStore struct {
	db *sqlx.DB
}

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

const upsertCollectionQuery = `
	INSERT INTO collections (collection_key, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(collection_key) DO UPDATE SET
		payload = excluded.payload,
		updated_at = excluded.updated_at
`

// Load は最後に保存された内容を返します。未保存のキーは nil, nil です。
func (k *KVStore) Load(key string) ([]byte, error) {
	var payload string
	err := k.db.Get(&payload, "SELECT payload FROM collections WHERE collection_key = ?", key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	return []byte(payload), nil
}

func (k *KVStore) Save(key string, data []byte) error {
	_, err := k.db.Exec(upsertCollectionQuery, key, string(data), timestamp())
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}

// SaveAll は複数コレクションを1トランザクションで保存します。
// どれか1件でも失敗した場合は何も保存されません。
func (k *KVStore) SaveAll(entries map[string][]byte) error {
	tx, err := k.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := timestamp()
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if _, err := tx.Exec(upsertCollectionQuery, key, string(entries[key]), now); err != nil {
			return fmt.Errorf("failed to save collection %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collections: %w", err)
	}
	return nil
}

// Clear は指定キーを削除します。キー指定なしの場合は全件削除します。
func (k *KVStore) Clear(keys ...string) error {
	tx, err := k.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(keys) == 0 {
		if _, err := tx.Exec("DELETE FROM collections"); err != nil {
			return fmt.Errorf("failed to clear collections: %w", err)
		}
	} else {
		query, args, err := sqlx.In("DELETE FROM collections WHERE collection_key IN (?)", keys)
		if err != nil {
			return fmt.Errorf("failed to build clear query: %w", err)
		}
		if _, err := tx.Exec(tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to clear collections %v: %w", keys, err)
		}
	}

	return tx.Commit()
}

// ListCollections は保存済みコレクションの一覧を返します。
func (k *KVStore) ListCollections() ([]CollectionInfo, error) {
	var infos []CollectionInfo
	err := k.db.Select(&infos, `
		SELECT collection_key, LENGTH(payload) AS size, updated_at
		FROM collections
		ORDER BY collection_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return infos, nil
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
