package memory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	players []roster.Player
}

func NewRosterRepository(players []roster.Player) *RosterRepository {
	out := make([]roster.Player, len(players))
	copy(out, players)
	return &RosterRepository{players: out}
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, len(r.players))
	copy(out, r.players)
	return out, nil
}

// Replace swaps the whole roster, e.g. after the roster file changed.
func (r *RosterRepository) Replace(players []roster.Player) {
	out := make([]roster.Player, len(players))
	copy(out, players)

	r.mu.Lock()
	r.players = out
	r.mu.Unlock()
}

// LoadRosterFile reads a roster CSV from disk. See ParseRosterCSV.
func LoadRosterFile(path string) ([]roster.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	players, err := ParseRosterCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse roster file %s: %w", path, err)
	}
	return players, nil
}

// ParseRosterCSV reads "name,role" rows in canonical order. A first row whose
// first cell is "name" is treated as a header. The role column is optional
// and defaults to Batsman.
func ParseRosterCSV(r io.Reader) ([]roster.Player, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var out []roster.Player
	for n := 1; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		if n == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}

		p := roster.Player{Name: strings.TrimSpace(record[0]), Role: roster.RoleBatsman}
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			role, err := roster.ParseRole(record[1])
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", n, err)
			}
			p.Role = role
		}
		out = append(out, p)
	}

	return out, nil
}
