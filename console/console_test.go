package console

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vinayprograms/tasklist/config"
	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/logging"
	"github.com/vinayprograms/tasklist/search"
	"github.com/vinayprograms/tasklist/tasks"
)

func emptyConfig() *config.Config {
	cfg := config.Default()
	cfg.Tasks.Seed = nil
	return cfg
}

func run(t *testing.T, s *Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := s.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func newSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	idx, err := search.New()
	if err != nil {
		t.Fatalf("search.New failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return New(cfg, WithIndex(idx), WithRand(rand.New(rand.NewSource(1))))
}

func TestSeed(t *testing.T) {
	s := newSession(t, config.Default())
	n, err := s.Seed()
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if n != 3 || s.Store().Len() != 3 {
		t.Errorf("expected 3 seeded tasks, got %d/%d", n, s.Store().Len())
	}

	out := run(t, s, "")
	if !strings.Contains(out, "Learn Go fundamentals") {
		t.Errorf("initial render should list seed tasks:\n%s", out)
	}
}

func TestAddToggleStats(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "add high Buy milk\nadd low Wash car\ntoggle 1\nstats\nquit\n")

	stats := s.Store().Stats()
	if stats.Total != 2 || stats.Completed != 1 || stats.CompletionRate != 50 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !strings.Contains(out, "Rate: 50% (fair)") {
		t.Errorf("expected stats line:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("expected goodbye on quit")
	}
}

func TestAddDefaultPriority(t *testing.T) {
	cfg := emptyConfig()
	cfg.Tasks.DefaultPriority = "low"
	s := newSession(t, cfg)
	run(t, s, "add Read\nadd high\n")

	list := s.Store().List()
	if len(list) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(list))
	}
	if list[0].Priority != tasks.PriorityLow {
		t.Errorf("Priority = %s, want low", list[0].Priority)
	}
	// A lone priority word is task text.
	if list[1].Text != "high" || list[1].Priority != tasks.PriorityLow {
		t.Errorf("unexpected task %+v", list[1])
	}
}

func TestAddEmpty(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "add\nadd medium Task A\n")

	if !strings.Contains(out, "Please enter a task!") {
		t.Errorf("expected empty-task notice:\n%s", out)
	}
	task, err := s.Store().Get(1)
	if err != nil || task.Text != "Task A" {
		t.Errorf("expected Task A with id 1, got %+v %v", task, err)
	}
}

func TestUnknownIDs(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "add medium x\ntoggle 9\nrm 9\ntoggle abc\n")

	if strings.Count(out, "Task 9 not found.") != 2 {
		t.Errorf("expected two not-found notices:\n%s", out)
	}
	if !strings.Contains(out, `Error: invalid task id "abc"`) {
		t.Errorf("expected invalid id error:\n%s", out)
	}
	if s.Store().Len() != 1 {
		t.Errorf("store should be unchanged, Len = %d", s.Store().Len())
	}
}

func TestRemoveConfirmation(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "add medium Buy milk\nrm 1\nn\nrm 1\ny\n")

	if !strings.Contains(out, `Are you sure you want to delete "Buy milk"? [y/N]`) {
		t.Errorf("expected confirmation prompt:\n%s", out)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("first rm should be cancelled:\n%s", out)
	}
	if s.Store().Len() != 0 {
		t.Errorf("second rm should delete, Len = %d", s.Store().Len())
	}
}

func TestNoConfirmation(t *testing.T) {
	cfg := emptyConfig()
	cfg.Tasks.ConfirmDestructive = false
	s := newSession(t, cfg)
	out := run(t, s, "add medium a\nadd medium b\nclear-all\n")

	if strings.Contains(out, "[y/N]") {
		t.Errorf("no prompt expected:\n%s", out)
	}
	if s.Store().Len() != 0 {
		t.Errorf("clear-all should empty the store")
	}
	if s.Store().NextID() != 3 {
		t.Errorf("NextID = %d, want 3", s.Store().NextID())
	}
}

func TestClearDone(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "clear-done\nclear-all\nadd medium a\nadd medium b\ntoggle 1\nclear-done\ny\n")

	for _, want := range []string{
		"No completed tasks to clear!",
		"No tasks to clear!",
		"Remove 1 completed task(s)? [y/N]",
		"Removed 1 completed task(s).",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	list := s.Store().List()
	if len(list) != 1 || list[0].ID != 2 {
		t.Errorf("expected only task 2 left, got %+v", list)
	}
}

func TestSearchCommand(t *testing.T) {
	s := newSession(t, emptyConfig())
	s.Store().Add("Buy milk", tasks.PriorityHigh)
	s.Store().Add("Buy stamps", tasks.PriorityLow)
	s.Store().Add("Wash car", tasks.PriorityLow)

	out := run(t, s, "search priority:low buy\nsearch nothing\nsearch\n")
	// Skip the initial render, which lists every task.
	after := out[strings.Index(out, Prompt):]

	if !strings.Contains(after, "Buy stamps") || strings.Contains(after, "Buy milk") || strings.Contains(after, "Wash car") {
		t.Errorf("filtered search should only return stamps:\n%s", after)
	}
	if !strings.Contains(after, "No matching tasks.") {
		t.Errorf("expected no-match notice:\n%s", after)
	}
	if !strings.Contains(after, "Error: usage: search") {
		t.Errorf("expected usage for empty search:\n%s", after)
	}
}

func TestSearchDisabled(t *testing.T) {
	s := New(emptyConfig())
	out := run(t, s, "search milk\n")
	if !strings.Contains(out, "Search is disabled.") {
		t.Errorf("expected disabled notice:\n%s", out)
	}
}

func TestPanels(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "profile Ada Lovelace 36\nprofile A 36\ncountdown\nadd low Read\nmotivate\n")

	for _, want := range []string{
		"Welcome, Ada Lovelace!",
		"Error: Please enter a valid name (at least 2 characters)",
		"BLAST OFF!",
		"DAILY MOTIVATION GENERATOR",
		"• Read",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryAndPDF(t *testing.T) {
	s := newSession(t, emptyConfig())
	path := filepath.Join(t.TempDir(), "summary.pdf")
	out := run(t, s, "summary\nadd high Buy milk\nsummary\npdf "+path+"\npdf\n")

	if !strings.Contains(out, "No tasks to summarize.") || !strings.Contains(out, "TASK SUMMARY REPORT") {
		t.Errorf("unexpected summary output:\n%s", out)
	}
	if !strings.Contains(out, "Summary written to "+path) {
		t.Errorf("expected pdf confirmation:\n%s", out)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected PDF file, got %v", err)
	}
	if !strings.Contains(out, "Error: usage: pdf [path]") {
		t.Errorf("pdf without path or config should print usage:\n%s", out)
	}
}

func TestThemeAndHelp(t *testing.T) {
	s := newSession(t, emptyConfig())
	out := run(t, s, "theme\nhelp\nbogus\n")

	if !strings.Contains(out, "Theme: dark") {
		t.Errorf("expected theme switch:\n%s", out)
	}
	if !strings.Contains(out, "add [high|medium|low] <text>") {
		t.Errorf("help should list add:\n%s", out)
	}
	if !strings.Contains(out, `Unknown command "bogus"`) {
		t.Errorf("expected unknown command notice:\n%s", out)
	}
}

func TestRunCancelled(t *testing.T) {
	s := newSession(t, emptyConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	defer r.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, r, &bytes.Buffer{})
	}()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSessionLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&logs)

	s := New(emptyConfig(), WithLogger(logger))
	run(t, s, "add high a\nquit\n")

	for _, want := range []string{"session_start", "task_added", "session_end", "commands=2"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestLongInputLine(t *testing.T) {
	s := New(emptyConfig())
	long := strings.Repeat("a", 70*1024)
	run(t, s, "add "+long+"\nadd Buy milk\n")

	list := s.Store().List()
	if len(list) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(list))
	}
	if list[0].Text != long || list[1].Text != "Buy milk" {
		t.Errorf("unexpected task texts: %d bytes, %q", len(list[0].Text), list[1].Text)
	}
}

func TestOversizedInputLine(t *testing.T) {
	s := New(emptyConfig())
	input := "add first\nadd " + strings.Repeat("a", maxLineSize) + "\nadd never\n"

	err := s.Run(context.Background(), strings.NewReader(input), &bytes.Buffer{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Run() = %v, want INVALID_INPUT", err)
	}
	if s.Store().Len() != 1 {
		t.Errorf("expected only the first task, got %d", s.Store().Len())
	}
}

func TestNilLogger(t *testing.T) {
	s := New(emptyConfig(), WithLogger(nil))
	run(t, s, "add a\ntoggle 1\ntoggle 9\n")
	if s.Store().Len() != 1 {
		t.Errorf("expected 1 task, got %d", s.Store().Len())
	}
}

func TestCommandFailureLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&logs)

	s := New(emptyConfig(), WithLogger(logger))
	out := run(t, s, "toggle abc\n")

	if !strings.Contains(out, `Error: invalid task id "abc"`) {
		t.Errorf("expected error message:\n%s", out)
	}
	for _, want := range []string{"command failed", "code=INVALID_INPUT", "retryable=false", "command=toggle"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}
