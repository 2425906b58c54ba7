package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/journal"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(id string, score int, ended time.Time) journal.Run {
	return journal.Run{
		ID:            id,
		Seed:          99,
		GridSize:      20,
		InitialLength: 3,
		Ticks:         42,
		Score:         score,
		Length:        3 + score,
		Reason:        journal.EndCollision,
		StartedAt:     ended.Add(-time.Minute),
		EndedAt:       ended,
		Events: []journal.Event{
			{Tick: 3, Direction: snake.DirDown, Dir: "down"},
			{Tick: 9, Direction: snake.DirLeft, Dir: "left"},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	want := testRun("run-1", 4, time.UnixMilli(1_700_000_000_000))

	if err := store.SaveRun(want); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if got.Seed != want.Seed || got.Ticks != want.Ticks || got.Score != want.Score || got.Reason != want.Reason {
		t.Errorf("GetRun() = %+v, expected %+v", got, want)
	}
	if !got.EndedAt.Equal(want.EndedAt) || !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("timestamps = %v..%v, expected %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}
	if len(got.Events) != 2 || got.Events[1].Direction != snake.DirLeft || got.Events[1].Tick != 9 {
		t.Errorf("events = %+v", got.Events)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetRun("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun() = %v, expected ErrNotFound", err)
	}
}

func TestStoreRecentRunsOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.SaveRun(testRun(id, i, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("order = %s, %s, expected c, b", runs[0].ID, runs[1].ID)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)
	run := testRun("same", 1, time.UnixMilli(1_700_000_000_000))
	if err := store.SaveRun(run); err != nil {
		t.Fatal(err)
	}
	run.Score = 7
	if err := store.SaveRun(run); err != nil {
		t.Fatal(err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Score != 7 {
		t.Errorf("runs = %+v, expected one run with score 7", runs)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveRun(testRun("gone", 0, time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteRun("gone"); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if err := store.DeleteRun("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRun() = %v, expected ErrNotFound", err)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)
	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
