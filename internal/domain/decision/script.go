package decision

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Script answers every decision from fixed values. It never blocks and is
// safe for concurrent use. Unset answers abort the request.
type Script struct {
	TeamListedFirst *bool
	BattingTable    *int
	BowlingTable    *int
	TeamWon         *bool
	ManOfTheMatch   string
	// NameCorrections maps a scraped name to its roster spelling.
	NameCorrections map[string]string
}

func (s Script) Resolve(_ context.Context, req Request) (Answer, error) {
	switch req.Kind {
	case KindTeamOrder:
		if s.TeamListedFirst != nil {
			return Answer{Value: FormatYesNo(*s.TeamListedFirst)}, nil
		}
	case KindBattingTable:
		if s.BattingTable != nil {
			return Answer{Value: strconv.Itoa(*s.BattingTable)}, nil
		}
	case KindBowlingTable:
		if s.BowlingTable != nil {
			return Answer{Value: strconv.Itoa(*s.BowlingTable)}, nil
		}
	case KindTeamWon:
		if s.TeamWon != nil {
			return Answer{Value: FormatYesNo(*s.TeamWon)}, nil
		}
	case KindManOfTheMatch:
		if req.Attempt > 1 {
			return s.correction(req)
		}
		if s.ManOfTheMatch != "" {
			return Answer{Value: s.ManOfTheMatch}, nil
		}
	case KindPlayerName:
		return s.correction(req)
	}

	return Answer{}, fmt.Errorf("%w: no scripted answer for %s %q", ErrAborted, req.Kind, req.Subject)
}

// correction looks up req.Subject. A correction that maps a name onto itself
// can never succeed and aborts.
func (s Script) correction(req Request) (Answer, error) {
	corrected, ok := s.NameCorrections[req.Subject]
	switch {
	case !ok:
		return Answer{}, fmt.Errorf("%w: no scripted answer for %s %q", ErrAborted, req.Kind, req.Subject)
	case strings.TrimSpace(corrected) == strings.TrimSpace(req.Subject):
		return Answer{}, fmt.Errorf("%w: scripted correction for %q maps the name onto itself", ErrAborted, req.Subject)
	default:
		return Answer{Value: corrected}, nil
	}
}

func Bool(v bool) *bool { return &v }
func Int(v int) *int    { return &v }
