package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
)

type line struct {
	text string
	err  error
}

// Prompter answers decisions by asking on a terminal. Lines are read by a
// single background goroutine so a cancelled question does not swallow the
// next answer.
type Prompter struct {
	out io.Writer

	mu    sync.Mutex
	in    *bufio.Reader
	once  sync.Once
	lines chan line
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan line),
	}
}

func (p *Prompter) Resolve(ctx context.Context, req decision.Request) (decision.Answer, error) {
	p.once.Do(func() { go p.readLines() })

	p.mu.Lock()
	p.render(req)
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return decision.Answer{}, fmt.Errorf("%w: %s: %w", decision.ErrAborted, req.Kind, ctx.Err())
	case l, ok := <-p.lines:
		if !ok {
			return decision.Answer{}, fmt.Errorf("%w: %s: input closed", decision.ErrAborted, req.Kind)
		}
		if l.err != nil && l.text == "" {
			return decision.Answer{}, fmt.Errorf("%w: %s: %w", decision.ErrAborted, req.Kind, l.err)
		}
		return decision.Answer{Value: strings.TrimSpace(l.text)}, nil
	}
}

func (p *Prompter) render(req decision.Request) {
	if req.MatchKey != "" {
		fmt.Fprintf(p.out, "[%s] ", req.MatchKey)
	}
	fmt.Fprintln(p.out, req.Prompt)
	for _, opt := range req.Options {
		if opt.Label == "" {
			fmt.Fprintf(p.out, "  %s\n", opt.Value)
			continue
		}
		fmt.Fprintf(p.out, "  %s: %s\n", opt.Value, opt.Label)
	}
	if req.Attempt > 1 {
		fmt.Fprintf(p.out, "(attempt %d) ", req.Attempt)
	}
	fmt.Fprint(p.out, "> ")
}

func (p *Prompter) readLines() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		if text == "" && err != nil {
			if err != io.EOF {
				p.lines <- line{err: err}
			}
			return
		}
		p.lines <- line{text: strings.TrimRight(text, "\r\n")}
		if err != nil {
			return
		}
	}
}
