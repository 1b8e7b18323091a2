package database

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutSave_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.PutSave(1, "campaign", 12, 3, "snapshot-data"); err != nil {
		t.Fatal(err)
	}

	save, err := db.GetSave(1)
	if err != nil {
		t.Fatal(err)
	}
	if save.Name != "campaign" || save.Turn != 12 || save.CurrentEmpire != 3 {
		t.Errorf("Expected campaign/12/3, got %s/%d/%d", save.Name, save.Turn, save.CurrentEmpire)
	}
	if save.Snapshot != "snapshot-data" {
		t.Errorf("Expected snapshot preserved, got %q", save.Snapshot)
	}
}

func TestPutSave_OverwritesSlot(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.PutSave(1, "first", 1, 1, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.PutSave(1, "second", 5, 2, "b"); err != nil {
		t.Fatal(err)
	}

	save, err := db.GetSave(1)
	if err != nil {
		t.Fatal(err)
	}
	if save.Name != "second" || save.Snapshot != "b" {
		t.Errorf("Expected the slot overwritten, got %s/%q", save.Name, save.Snapshot)
	}

	saves, err := db.ListSaves()
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Errorf("Expected a single save in the slot, got %d", len(saves))
	}
}

func TestGetSave_EmptySlot(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetSave(7); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound, got %v", err)
	}
}

func TestListSaves_OrderedBySlot(t *testing.T) {
	db := newTestDB(t)

	for _, slot := range []int{3, 1, 2} {
		if _, err := db.PutSave(slot, "save", 1, 1, "x"); err != nil {
			t.Fatal(err)
		}
	}

	saves, err := db.ListSaves()
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 3 {
		t.Fatalf("Expected 3 saves, got %d", len(saves))
	}
	for i, save := range saves {
		if save.Slot != i+1 {
			t.Errorf("Expected slot %d at position %d, got %d", i+1, i, save.Slot)
		}
	}
}

func TestDeleteSave_ClearsSlot(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.PutSave(1, "save", 1, 1, "x"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteSave(1); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteSave(1); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound on empty slot, got %v", err)
	}
}
