package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/bolophil/SplitIt/internal/server"
	"github.com/bolophil/SplitIt/internal/storage/sqlite"
	"github.com/bolophil/SplitIt/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	godotenv.Load()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/receipts.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		slog.Error("Invalid PORT", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	handler := server.New(store, server.Config{
		Port:      port,
		JWTSecret: jwtSecret,
		TokenTTL:  24 * time.Hour,
	})

	if err := server.Run(handler, port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
