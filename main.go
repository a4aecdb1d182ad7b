package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"retail/config"
	"retail/database"
	"retail/loader"
	"retail/store"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("WARN: .env not loaded: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	kv := database.NewKVStore(dbConn)
	st := store.New(kv)
	st.Load()

	if cfg.SeedProductsPath != "" {
		n, err := loader.SeedProducts(st, cfg.SeedProductsPath, cfg.CSVEncoding)
		if err != nil {
			log.Printf("WARN: Failed to seed products from %s: %v", cfg.SeedProductsPath, err)
		} else if n > 0 {
			log.Printf("INFO: seeded %d products from %s", n, cfg.SeedProductsPath)
		}
	}

	mux := http.NewServeMux()
	SetupRoutes(mux, st, kv)

	port := cfg.Port
	if port == "" {
		port = ":8080"
	}
	log.Printf("Starting server on http://localhost%s", port)
	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
