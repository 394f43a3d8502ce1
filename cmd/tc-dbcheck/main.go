package main

import (
	"fmt"
	"log"
	"os"

	"toolcrib/internal/server"
)

func main() {
	dbPath := os.Getenv("TC_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/toolcrib.db"
	}

	db, err := server.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name;`)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	defer rows.Close()

	fmt.Println("Tables:")
	for rows.Next() {
		var name string
		_ = rows.Scan(&name)
		fmt.Println(" -", name)
	}

	var users, assets, checkouts, held int
	_ = db.QueryRow(`SELECT COUNT(*) FROM users;`).Scan(&users)
	_ = db.QueryRow(`SELECT COUNT(*) FROM assets;`).Scan(&assets)
	_ = db.QueryRow(`SELECT COUNT(*) FROM checkouts;`).Scan(&checkouts)
	_ = db.QueryRow(`SELECT COUNT(*) FROM checkouts WHERE status IN ('active','overdue');`).Scan(&held)

	fmt.Println("Users:", users)
	fmt.Println("Assets:", assets)
	fmt.Println("Checkouts:", checkouts, "held:", held)
}
