// Package console runs the interactive task-list command loop.
//
// A Session owns one store. After every mutating command it redraws the
// list and counters and rebuilds the search index; nothing observes the
// store directly.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/vinayprograms/tasklist/config"
	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/logging"
	"github.com/vinayprograms/tasklist/render"
	"github.com/vinayprograms/tasklist/search"
	"github.com/vinayprograms/tasklist/tasks"
)

// Prompt is written before each command is read.
const Prompt = "> "

// Session binds a store to a renderer, a search index and a config.
type Session struct {
	cfg    *config.Config
	store  *tasks.Store
	index  *search.Index
	logger *logging.Logger
	rng    *rand.Rand
	theme  render.Theme

	renderer *render.Renderer
	out      io.Writer
	input    *lineReader
	commands int
}

// Option configures a Session.
type Option func(*Session)

// WithStore uses an existing store instead of a fresh one.
func WithStore(store *tasks.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithIndex enables the search command.
func WithIndex(index *search.Index) Option {
	return func(s *Session) {
		s.index = index
	}
}

// WithLogger sets the session logger. Nil keeps the discarding default.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the random source for the motivation panels.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// New creates a session. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		cfg:    cfg,
		logger: logging.Discard(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		theme:  render.Theme(cfg.Display.Theme),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = tasks.NewStore(tasks.WithLogger(s.logger))
	}
	return s
}

// Store returns the session's store.
func (s *Session) Store() *tasks.Store {
	return s.store
}

// Seed adds the configured seed tasks and returns how many were added.
func (s *Session) Seed() (int, error) {
	added := 0
	for _, seed := range s.cfg.Tasks.Seed {
		p, err := tasks.ParsePriority(seed.Priority)
		if err != nil {
			return added, err
		}
		if _, err := s.store.Add(seed.Text, p); err != nil {
			return added, err
		}
		added++
	}
	if s.index != nil {
		if err := s.index.Rebuild(s.store.List()); err != nil {
			return added, err
		}
	}
	return added, nil
}

// Run reads commands from in and writes output to out until quit, end
// of input or ctx is cancelled. Cancellation is checked between commands.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	s.out = out
	s.renderer = render.New(out, s.theme)
	s.input = readLines(ctx, in)
	s.commands = 0

	s.logger.SessionStart(s.store.Len())
	defer func() {
		s.logger.SessionEnd(time.Since(start), s.commands)
	}()

	fmt.Fprintln(out, "Task list ready. Type 'help' for commands.")
	if err := s.refresh(); err != nil {
		return err
	}

	for {
		fmt.Fprint(out, Prompt)
		line, ok, err := s.next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.commands++
		quit, err := s.execute(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
	}
}

// next returns the next input line. ok is false at end of input; a read
// failure is returned as an error instead.
func (s *Session) next(ctx context.Context) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-s.input.lines:
		if !ok && s.input.err != nil {
			return "", false, errors.WrapWithCode(s.input.err, errors.ErrCodeInvalidInput, "reading input")
		}
		return line, ok, nil
	}
}

// confirm asks a yes/no question. It always says yes when
// confirm_destructive is off.
func (s *Session) confirm(ctx context.Context, question string) (bool, error) {
	if !s.cfg.Tasks.ConfirmDestructive {
		return true, nil
	}
	fmt.Fprintf(s.out, "%s [y/N] ", question)
	line, ok, err := s.next(ctx)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(s.out, "Cancelled.")
	return false, nil
}

// refresh redraws the list and counters and rebuilds the search index.
func (s *Session) refresh() error {
	list := s.store.List()
	if err := s.renderer.Refresh(list, s.store.Stats()); err != nil {
		return err
	}
	if s.index == nil {
		return nil
	}
	err := s.index.Rebuild(list)
	if errors.IsRetryable(err) {
		err = s.index.Rebuild(list)
	}
	if err != nil {
		fields := map[string]interface{}{"error": err.Error()}
		if se := errors.As(err); se != nil {
			fields = se.LogFields()
		}
		s.logger.Error("search index rebuild failed", fields)
	}
	return nil
}

// maxLineSize bounds a single command line.
const maxLineSize = 1024 * 1024

type lineReader struct {
	lines chan string
	err   error // set before lines is closed
}

func readLines(ctx context.Context, in io.Reader) *lineReader {
	r := &lineReader{lines: make(chan string)}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}
