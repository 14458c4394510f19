package decision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrAborted = errors.New("decision aborted")

// Kind names the question being asked.
type Kind string

const (
	KindTeamOrder     Kind = "team_order"
	KindBattingTable  Kind = "batting_table"
	KindBowlingTable  Kind = "bowling_table"
	KindPlayerName    Kind = "player_name"
	KindManOfTheMatch Kind = "man_of_the_match"
	KindTeamWon       Kind = "team_won"
)

type Option struct {
	Value string
	Label string
}

// Request is one external decision. Subject carries the value being
// corrected, e.g. the unmatched player name. Attempt starts at 1.
type Request struct {
	Kind     Kind
	MatchKey string
	Prompt   string
	Subject  string
	Options  []Option
	Attempt  int
}

type Answer struct {
	Value string
}

// Provider answers decisions that the pipeline must not guess. Interactive
// callers prompt a person, batch callers answer from a script.
type Provider interface {
	Resolve(ctx context.Context, req Request) (Answer, error)
}

// Ask resolves req bounded by timeout. Expiry and cancellation surface as
// ErrAborted wrapping the context error.
func Ask(ctx context.Context, provider Provider, timeout time.Duration, req Request) (Answer, error) {
	if provider == nil {
		return Answer{}, fmt.Errorf("%w: no decision provider for %s", ErrAborted, req.Kind)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	answer, err := provider.Resolve(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Answer{}, fmt.Errorf("%w: %s: %w", ErrAborted, req.Kind, ctxErr)
	}
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return Answer{}, err
		}
		return Answer{}, fmt.Errorf("%w: %s: %w", ErrAborted, req.Kind, err)
	}
	answer.Value = strings.TrimSpace(answer.Value)
	return answer, nil
}

// ParseYesNo accepts y/yes/true/1 and n/no/false/0, case-insensitively.
func ParseYesNo(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "1", "first":
		return true, nil
	case "n", "no", "false", "0", "second":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", value)
	}
}

func FormatYesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
