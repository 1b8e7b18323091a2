// Package scenario reads and writes game snapshots in the line-oriented
// save format: scalar header, per-empire blocks, then the nine map layers as
// comma-separated rows.
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nine-empires/internal/game"
)

// Scenario is a decoded snapshot: the full empire registry, the world map and
// the turn counter.
type Scenario struct {
	Registry *game.Registry
	Map      *game.WorldMap
	Turn     int
}

// layerOrder is the persisted layer sequence. It never changes; saved games
// depend on it.
var layerOrder = [game.NumLayers]game.Layer{
	game.LayerOwner,
	game.LayerOriginalOwner,
	game.LayerTerrain,
	game.LayerFort,
	game.LayerChurch,
	game.LayerUniversity,
	game.LayerMill,
	game.LayerArmy,
	game.LayerArrived,
}

// reader wraps a scanner with line counting for error messages.
type reader struct {
	scanner *bufio.Scanner
	line    int
}

func (r *reader) next() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("line %d: unexpected end of snapshot", r.line+1)
	}
	r.line++
	return strings.TrimSpace(r.scanner.Text()), nil
}

func (r *reader) nextInt() (int, error) {
	text, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("line %d: expected integer, got %q", r.line, text)
	}
	return v, nil
}

func (r *reader) nextFloat() (float64, error) {
	text, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: expected number, got %q", r.line, text)
	}
	return v, nil
}

// Decode parses one snapshot. Empire land counts are rebuilt from the owner
// layer rather than trusted from the file.
func Decode(src io.Reader) (*Scenario, error) {
	r := &reader{scanner: bufio.NewScanner(src)}

	numEmpires, err := r.nextInt()
	if err != nil {
		return nil, err
	}
	if numEmpires < 1 || numEmpires > game.MaxEmpires {
		return nil, fmt.Errorf("line %d: empire count %d out of range", r.line, numEmpires)
	}
	current, err := r.nextInt()
	if err != nil {
		return nil, err
	}
	if current < 1 || current > numEmpires {
		return nil, fmt.Errorf("line %d: current empire %d out of range", r.line, current)
	}
	turn, err := r.nextInt()
	if err != nil {
		return nil, err
	}

	// Six reserved header values.
	for i := 0; i < 6; i++ {
		if _, err := r.next(); err != nil {
			return nil, err
		}
	}

	registry := game.NewRegistry()
	for id := 1; id <= numEmpires; id++ {
		if err := decodeEmpire(r, registry, id, numEmpires); err != nil {
			return nil, fmt.Errorf("empire %d: %w", id, err)
		}
	}
	registry.Current = current

	m := game.NewWorldMap()
	for _, layer := range layerOrder {
		if err := decodeLayer(r, m, layer); err != nil {
			return nil, err
		}
	}

	for _, e := range registry.All() {
		e.LandCount = m.CountOwner(e.ID)
	}

	return &Scenario{Registry: registry, Map: m, Turn: turn}, nil
}

func decodeEmpire(r *reader, registry *game.Registry, id, numEmpires int) error {
	name, err := r.next()
	if err != nil {
		return err
	}
	control, err := r.next()
	if err != nil {
		return err
	}
	e, err := registry.Add(id, name, control)
	if err != nil {
		return err
	}

	if e.Population, err = r.nextInt(); err != nil {
		return err
	}
	e.DistributePopulation()

	if e.Treasury, err = r.nextInt(); err != nil {
		return err
	}
	if e.Navy, err = r.nextInt(); err != nil {
		return err
	}
	if e.Embarked, err = r.nextInt(); err != nil {
		return err
	}
	if e.MovedEmbarked, err = r.nextInt(); err != nil {
		return err
	}
	if e.TaxRate, err = r.nextFloat(); err != nil {
		return err
	}
	if e.Trust, err = r.nextFloat(); err != nil {
		return err
	}

	for b := game.BranchAgriculture; b <= game.BranchMedicine; b++ {
		level, err := r.nextFloat()
		if err != nil {
			return err
		}
		e.Science.SetLevel(b, level)
	}

	// Reserved diplomacy rows, one relation and one action line per empire.
	for i := 0; i < numEmpires*2; i++ {
		if _, err := r.next(); err != nil {
			return err
		}
	}
	return nil
}

func decodeLayer(r *reader, m *game.WorldMap, layer game.Layer) error {
	for y := 0; y < game.MapSize; y++ {
		text, err := r.next()
		if err != nil {
			return err
		}
		fields := strings.Split(strings.ReplaceAll(text, " ", ""), ",")
		if len(fields) != game.MapSize {
			return fmt.Errorf("line %d: expected %d values, got %d", r.line, game.MapSize, len(fields))
		}
		for x, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("line %d: bad cell value %q", r.line, field)
			}
			if v < 0 {
				return fmt.Errorf("line %d: negative cell value %d", r.line, v)
			}
			if layer == game.LayerOwner && v > game.MaxEmpires {
				return fmt.Errorf("line %d: owner id %d out of range", r.line, v)
			}
			m.Set(layer, x, y, v)
		}
	}
	return nil
}

// Encode writes a snapshot in the persisted format.
func Encode(dst io.Writer, s *Scenario) error {
	w := bufio.NewWriter(dst)
	empires := s.Registry.All()

	writeInt(w, len(empires))
	writeInt(w, s.Registry.Current)
	writeInt(w, s.Turn)
	for i := 0; i < 6; i++ {
		writeInt(w, 0)
	}

	for _, e := range empires {
		fmt.Fprintln(w, e.Name)
		fmt.Fprintln(w, e.Control)
		writeInt(w, e.Population)
		writeInt(w, e.Treasury)
		writeInt(w, e.Navy)
		writeInt(w, e.Embarked)
		writeInt(w, e.MovedEmbarked)
		writeFloat(w, e.TaxRate)
		writeFloat(w, e.Trust)
		for b := game.BranchAgriculture; b <= game.BranchMedicine; b++ {
			writeFloat(w, e.Science.Level(b))
		}
		for i := 0; i < len(empires); i++ {
			writeInt(w, 2) // reserved relation row
		}
		for i := 0; i < len(empires); i++ {
			writeInt(w, 0) // reserved action row
		}
	}

	for _, layer := range layerOrder {
		for y := 0; y < game.MapSize; y++ {
			row := make([]string, game.MapSize)
			for x := 0; x < game.MapSize; x++ {
				row[x] = strconv.Itoa(s.Map.At(layer, x, y))
			}
			fmt.Fprintln(w, strings.Join(row, ", "))
		}
	}

	return w.Flush()
}

func writeInt(w *bufio.Writer, v int) {
	fmt.Fprintln(w, strconv.Itoa(v))
}

func writeFloat(w *bufio.Writer, v float64) {
	fmt.Fprintln(w, strconv.FormatFloat(v, 'g', -1, 64))
}
