package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSaveNotFound is returned when a save slot is empty.
var ErrSaveNotFound = errors.New("save not found")

// Save is one persisted game snapshot.
type Save struct {
	ID            string
	Slot          int
	Name          string
	Turn          int
	CurrentEmpire int
	Snapshot      string
	CreatedAt     time.Time
}

// PutSave writes a snapshot into a slot, replacing any previous save there.
func (db *DB) PutSave(slot int, name string, turn, currentEmpire int, snapshot string) (*Save, error) {
	save := &Save{
		ID:            uuid.New().String(),
		Slot:          slot,
		Name:          name,
		Turn:          turn,
		CurrentEmpire: currentEmpire,
		Snapshot:      snapshot,
		CreatedAt:     time.Now(),
	}

	_, err := db.conn.Exec(`
		INSERT INTO saves (id, slot, name, turn, current_empire, snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			turn = excluded.turn,
			current_empire = excluded.current_empire,
			snapshot = excluded.snapshot,
			created_at = excluded.created_at
	`, save.ID, save.Slot, save.Name, save.Turn, save.CurrentEmpire, save.Snapshot, save.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to write save: %w", err)
	}

	return save, nil
}

// GetSave reads the snapshot in a slot.
func (db *DB) GetSave(slot int) (*Save, error) {
	var save Save
	err := db.conn.QueryRow(`
		SELECT id, slot, name, turn, current_empire, snapshot, created_at
		FROM saves WHERE slot = ?
	`, slot).Scan(&save.ID, &save.Slot, &save.Name, &save.Turn, &save.CurrentEmpire, &save.Snapshot, &save.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	return &save, nil
}

// ListSaves returns all saves ordered by slot. Snapshots are omitted; use
// GetSave to load one.
func (db *DB) ListSaves() ([]Save, error) {
	rows, err := db.conn.Query(`
		SELECT id, slot, name, turn, current_empire, created_at
		FROM saves ORDER BY slot
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		var save Save
		if err := rows.Scan(&save.ID, &save.Slot, &save.Name, &save.Turn, &save.CurrentEmpire, &save.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		saves = append(saves, save)
	}
	return saves, rows.Err()
}

// DeleteSave clears a slot.
func (db *DB) DeleteSave(slot int) error {
	result, err := db.conn.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSaveNotFound
	}
	return nil
}
