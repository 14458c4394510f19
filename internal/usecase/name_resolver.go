package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
)

// NameResolver maps scraped names onto the roster for a single match. It only
// accepts exact matches and asks the decision provider for every correction.
// Corrections are remembered for the lifetime of the resolver, so one
// resolver must never be shared between matches.
type NameResolver struct {
	roster      roster.Roster
	decisions   decision.Provider
	timeout     time.Duration
	maxAttempts int
	matchKey    string
	memo        map[string]string
}

type NameResolverOptions struct {
	MatchKey string
	Timeout  time.Duration
	// MaxAttempts caps correction requests per name. Zero means unlimited.
	MaxAttempts int
}

func NewNameResolver(r roster.Roster, decisions decision.Provider, opts NameResolverOptions) *NameResolver {
	return &NameResolver{
		roster:      r,
		decisions:   decisions,
		timeout:     opts.Timeout,
		maxAttempts: opts.MaxAttempts,
		matchKey:    opts.MatchKey,
		memo:        make(map[string]string),
	}
}

// Resolve returns the roster spelling of name.
func (r *NameResolver) Resolve(ctx context.Context, name string) (string, error) {
	if r.roster.Contains(name) {
		return name, nil
	}
	if corrected, ok := r.memo[name]; ok {
		return corrected, nil
	}

	corrected, err := r.ask(ctx, decision.KindPlayerName, name, func(subject string) string {
		return fmt.Sprintf("The name %q was not found on the roster. Type the name as it appears on the roster.", subject)
	})
	if err != nil {
		return "", err
	}
	r.memo[name] = corrected
	return corrected, nil
}

// ResolveManOfTheMatch asks who was Man of the Match. An answer of "none"
// means no award was made and returns "".
func (r *NameResolver) ResolveManOfTheMatch(ctx context.Context) (string, error) {
	return r.ask(ctx, decision.KindManOfTheMatch, "", func(subject string) string {
		if subject == "" {
			return "Who was Man of the Match? Type the name as it appears on the roster, or none."
		}
		return fmt.Sprintf("The name %q was not found on the roster. Who was Man of the Match?", subject)
	})
}

// Corrections returns the scraped-to-roster mappings made so far.
func (r *NameResolver) Corrections() map[string]string {
	out := make(map[string]string, len(r.memo))
	for k, v := range r.memo {
		out[k] = v
	}
	return out
}

func (r *NameResolver) ask(ctx context.Context, kind decision.Kind, subject string, prompt func(string) string) (string, error) {
	original := subject
	asked := map[string]struct{}{subject: {}}
	for attempt := 1; r.maxAttempts <= 0 || attempt <= r.maxAttempts; attempt++ {
		answer, err := decision.Ask(ctx, r.decisions, r.timeout, decision.Request{
			Kind:     kind,
			MatchKey: r.matchKey,
			Prompt:   prompt(subject),
			Subject:  subject,
			Attempt:  attempt,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", roster.ErrUnresolvableName, original, err)
		}

		if kind == decision.KindManOfTheMatch && attempt == 1 && isNoAward(answer.Value) {
			return "", nil
		}
		if r.roster.Contains(answer.Value) {
			return answer.Value, nil
		}
		if _, repeated := asked[answer.Value]; repeated {
			return "", fmt.Errorf("%w: %q: correction %q was already rejected", roster.ErrUnresolvableName, original, answer.Value)
		}
		asked[answer.Value] = struct{}{}
		subject = answer.Value
	}

	return "", fmt.Errorf("%w: %q after %d attempts", roster.ErrUnresolvableName, original, r.maxAttempts)
}

func isNoAward(value string) bool {
	switch strings.ToLower(value) {
	case "none", "-", "n/a":
		return true
	default:
		return false
	}
}
