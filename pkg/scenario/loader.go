package scenario

import (
	"bytes"
	"embed"
	"fmt"
	"os"
)

//go:embed data/*.scn
var scenarioFiles embed.FS

// Load reads a snapshot from disk.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Save writes a snapshot to disk.
func Save(path string, s *Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scenario: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write scenario: %w", err)
	}
	return f.Close()
}

// Default returns the embedded starter scenario.
func Default() (*Scenario, error) {
	data, err := scenarioFiles.ReadFile("data/default.scn")
	if err != nil {
		return nil, fmt.Errorf("read embedded scenario: %w", err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("embedded scenario: %w", err)
	}
	return s, nil
}
