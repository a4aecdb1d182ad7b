package loader

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"retail/parsers"
	"retail/store"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// InitDatabase はデータベーススキーマを適用します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

// SeedProducts は商品が1件も無い場合に限り、CSVから初期商品を登録します。
// ファイルが無い場合は何もしません。
func SeedProducts(st *store.Store, path, charset string) (int, error) {
	if path == "" {
		return 0, nil
	}
	if len(st.Products()) > 0 {
		log.Printf("INFO: products already exist, skipping seed from %s.", path)
		return 0, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping.", path)
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	records, err := parsers.ParseProductCSV(f, charset)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	created, err := st.ImportProducts(records)
	if err != nil {
		return 0, fmt.Errorf("failed to import products from %s: %w", path, err)
	}
	log.Printf("Seeded %d products from %s", len(created), path)
	return len(created), nil
}
