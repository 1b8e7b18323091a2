package database

import (
	"bytes"
	"fmt"

	"nine-empires/internal/game"
	"nine-empires/pkg/scenario"
)

// SlotSaver implements the engine's save hook against a single database
// slot. Saving twice overwrites the slot.
type SlotSaver struct {
	DB   *DB
	Slot int
	Name string
}

// SaveSnapshot encodes the running game and stores it in the slot.
func (s *SlotSaver) SaveSnapshot(o *game.Orchestrator) (string, error) {
	var buf bytes.Buffer
	snap := &scenario.Scenario{Registry: o.Registry, Map: o.Map, Turn: o.Turn}
	if err := scenario.Encode(&buf, snap); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	save, err := s.DB.PutSave(s.Slot, s.Name, o.Turn, o.Registry.Current, buf.String())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (slot %d, turn %d)", save.Name, save.Slot, save.Turn), nil
}
