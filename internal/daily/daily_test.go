package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/boggle/internal/database"
)

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	next := morning.Add(24 * time.Hour)

	if Seed(morning, "salt") != Seed(evening, "salt") {
		t.Fatal("seed should not change within a UTC day")
	}
	if Seed(morning, "salt") == Seed(next, "salt") {
		t.Fatal("seed should change between days")
	}
	if Seed(morning, "salt") == Seed(morning, "pepper") {
		t.Fatal("seed should depend on the salt")
	}
	if Seed(morning, "salt") <= 0 {
		t.Fatal("seed must be positive")
	}
	if got := DateKey(morning); got != "2024-03-09" {
		t.Fatalf("DateKey = %s", got)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "daily.db"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	defer db.Close()
	s := NewStore(db)
	ctx := context.Background()

	results := []Result{
		{UserID: "a", Date: "2024-03-09", Seed: 1, Score: 5, Words: 3, ElapsedMs: 9000},
		{UserID: "b", Date: "2024-03-09", Seed: 1, Score: 9, Words: 6, ElapsedMs: 12000},
		{UserID: "c", Date: "2024-03-09", Seed: 1, Score: 5, Words: 4, ElapsedMs: 4000},
		{UserID: "a", Date: "2024-03-09", Seed: 1, Score: 50, Words: 30, ElapsedMs: 1},
		{UserID: "a", Date: "2024-03-10", Seed: 2, Score: 1, Words: 1, ElapsedMs: 1},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult: %v", err)
		}
	}

	played, err := s.AlreadyPlayed(ctx, "a", "2024-03-09")
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed = %v, %v", played, err)
	}
	if played, _ := s.AlreadyPlayed(ctx, "b", "2024-03-10"); played {
		t.Fatal("b did not play on 2024-03-10")
	}

	top, err := s.Leaderboard(ctx, "2024-03-09", 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	want := []string{"b", "c", "a"}
	if len(top) != len(want) {
		t.Fatalf("leaderboard = %+v", top)
	}
	for i, id := range want {
		if top[i].UserID != id {
			t.Fatalf("leaderboard[%d] = %s, want %s (%+v)", i, top[i].UserID, id, top)
		}
	}
	if top[2].Score != 5 {
		t.Fatal("duplicate result for the same day must be ignored")
	}
}
