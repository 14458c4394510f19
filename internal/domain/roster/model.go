package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnresolvableName = errors.New("name could not be resolved against the roster")
	ErrPlayerNotFound   = errors.New("player not found in roster")
	ErrInvalidRoster    = errors.New("invalid roster")
)

type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-Rounder"
	RoleWicketKeeper Role = "Wicket-keeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:      {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

// ParseRole accepts the role spellings used in roster files, case-insensitively.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "batsman", "batter":
		return RoleBatsman, nil
	case "bowler":
		return RoleBowler, nil
	case "all-rounder", "allrounder", "all rounder":
		return RoleAllRounder, nil
	case "wicket-keeper", "wicketkeeper", "wicket keeper", "keeper":
		return RoleWicketKeeper, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidRoster, raw)
	}
}

// Player is one canonical roster entry. Number is its 1-based position.
type Player struct {
	Number int
	Name   string
	Role   Role
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidRoster)
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("%w: invalid role %q for %s", ErrInvalidRoster, p.Role, p.Name)
	}
	return nil
}

// Roster is the ordered canonical list of player names. Lookups are exact.
type Roster struct {
	players []Player
	index   map[string]int
}

// New builds a roster in the given order and renumbers players from 1.
func New(players []Player) (Roster, error) {
	out := Roster{
		players: make([]Player, 0, len(players)),
		index:   make(map[string]int, len(players)),
	}
	for i, p := range players {
		if err := p.Validate(); err != nil {
			return Roster{}, err
		}
		if _, exists := out.index[p.Name]; exists {
			return Roster{}, fmt.Errorf("%w: duplicate name %q", ErrInvalidRoster, p.Name)
		}
		p.Number = i + 1
		out.index[p.Name] = i
		out.players = append(out.players, p)
	}
	return out, nil
}

// FromNames builds a roster of batsmen, mostly for tests and scripted runs.
func FromNames(names ...string) (Roster, error) {
	players := make([]Player, 0, len(names))
	for _, name := range names {
		players = append(players, Player{Name: name, Role: RoleBatsman})
	}
	return New(players)
}

func (r Roster) Len() int {
	return len(r.players)
}

func (r Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// IndexOf returns the 0-based position of name, or -1.
func (r Roster) IndexOf(name string) int {
	if idx, ok := r.index[name]; ok {
		return idx
	}
	return -1
}

func (r Roster) NameToNumber(name string) (int, error) {
	idx, ok := r.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return idx + 1, nil
}

func (r Roster) NumberToName(number int) (string, error) {
	if number < 1 || number > len(r.players) {
		return "", fmt.Errorf("%w: number %d", ErrPlayerNotFound, number)
	}
	return r.players[number-1].Name, nil
}

func (r Roster) Player(name string) (Player, bool) {
	idx, ok := r.index[name]
	if !ok {
		return Player{}, false
	}
	return r.players[idx], true
}

// Players returns a copy in canonical order.
func (r Roster) Players() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r Roster) Names() []string {
	out := make([]string, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Name)
	}
	return out
}
