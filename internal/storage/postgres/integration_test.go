package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

// Set DAYWEAVE_TEST_POSTGRES to a connection string to run against a real
// database, e.g. "postgres://dayweave@localhost:5432/dayweave_test?sslmode=disable".
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("DAYWEAVE_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("DAYWEAVE_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	user := "integration-" + time.Now().Format("150405.000000")
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Tasks", func(t *testing.T) {
		task := models.Task{ID: user + "-t1", Name: "pg task", DurationMin: 30,
			Priority: models.PriorityHigh, CreatedAt: created}
		if err := store.AddTask(ctx, user, task); err != nil {
			t.Fatalf("AddTask() failed: %v", err)
		}
		got, err := store.GetTask(ctx, user, task.ID)
		if err != nil {
			t.Fatalf("GetTask() failed: %v", err)
		}
		if got.Name != task.Name || !got.CreatedAt.Equal(created) {
			t.Errorf("GetTask() = %+v", got)
		}
	})

	t.Run("Placements", func(t *testing.T) {
		ps := []models.Placement{{ItemID: "x", WindowID: "w", Start: created, End: created.Add(time.Hour), Weight: 1}}
		if err := store.SavePlacements(ctx, user, "2024-03-01", ps); err != nil {
			t.Fatalf("SavePlacements() failed: %v", err)
		}
		got, err := store.GetPlacements(ctx, user, "2024-03-01")
		if err != nil {
			t.Fatalf("GetPlacements() failed: %v", err)
		}
		if len(got) != 1 || got[0].ItemID != "x" {
			t.Errorf("GetPlacements() = %v", got)
		}
	})
}
