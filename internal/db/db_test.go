package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ChudiNnorukam/seoauditlite/internal/db"
)

func getTestDB(t *testing.T) *db.Database {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	database, err := db.Connect(dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestHealthCheck(t *testing.T) {
	database := getTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx); err != nil {
		t.Fatalf("Health check failed: %v", err)
	}
}

func TestConnectInvalidURL(t *testing.T) {
	if _, err := db.Connect("not-a-url"); err == nil {
		t.Fatal("expected error for malformed connection string")
	}
}
