package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"toolcrib/internal/server"
	"toolcrib/internal/shared"
)

func main() {
	// Optional JSON config file; env vars win either way
	cfg := shared.DefaultServerConfig()
	if path := os.Getenv("TC_CONFIG"); path != "" {
		loaded, err := shared.LoadServerConfig(path)
		if err != nil {
			log.Fatalf("failed to load config %s: %v", path, err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	var store server.Store
	switch cfg.Store {
	case "mem":
		store = server.NewMemStore()
	case "sqlite":
		// Ensure the directory exists when pointed at a file
		if cfg.DBPath != ":memory:" {
			dbDir := filepath.Dir(cfg.DBPath)
			if dbDir != "." && dbDir != "" {
				if err := os.MkdirAll(dbDir, 0700); err != nil {
					log.Fatalf("failed to create db dir %s: %v", dbDir, err)
				}
			}
		}
		db, err := server.OpenDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open db %s: %v", cfg.DBPath, err)
		}
		store = server.NewSQLiteStore(db)
	default:
		log.Fatalf("unknown store %q (want mem or sqlite)", cfg.Store)
	}

	api := &server.API{Service: server.NewService(store)}

	log.Printf("tc-server listening on %s", cfg.Addr)
	log.Printf("store: %s", cfg.Store)
	if cfg.Store == "sqlite" {
		log.Printf("db: %s", cfg.DBPath)
	}

	log.Fatal(http.ListenAndServe(cfg.Addr, server.LogRequests(api.Routes())))
}
