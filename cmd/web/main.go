package main

import (
	"log"
	"net/http"

	"github.com/AdamBeresnev/fantapes-tv/internal/config"
	"github.com/AdamBeresnev/fantapes-tv/internal/db"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	database := db.InitDB(cfg.DBPath)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	// No background cleanup, expired rows are ignored on read
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(database.DB, 0)

	application, err := newApp(cfg, database, sessionManager)
	if err != nil {
		log.Fatal("Failed to start:", err)
	}

	router := newRouter(application)

	log.Println("Server starting on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatal(err)
	}
}
