package console

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/panels"
	"github.com/vinayprograms/tasklist/render"
	"github.com/vinayprograms/tasklist/search"
	"github.com/vinayprograms/tasklist/tasks"
)

type command struct {
	usage string
	help  string
	run   func(s *Session, ctx context.Context, args []string) error
}

var commands map[string]command

// commandOrder is the order help lists commands in.
var commandOrder = []string{
	"add", "toggle", "rm", "clear-done", "clear-all", "list", "stats",
	"summary", "pdf", "search", "profile", "countdown", "motivate",
	"theme", "help", "quit",
}

func init() {
	commands = map[string]command{
		"add":        {"add [high|medium|low] <text>", "add a task", (*Session).cmdAdd},
		"toggle":     {"toggle <id>", "mark a task done or not done", (*Session).cmdToggle},
		"rm":         {"rm <id>", "delete a task", (*Session).cmdRemove},
		"clear-done": {"clear-done", "delete all completed tasks", (*Session).cmdClearDone},
		"clear-all":  {"clear-all", "delete every task", (*Session).cmdClearAll},
		"list":       {"list", "show the task list", (*Session).cmdList},
		"stats":      {"stats", "show the counters", (*Session).cmdStats},
		"summary":    {"summary", "print the summary report", (*Session).cmdSummary},
		"pdf":        {"pdf [path]", "write the summary report as PDF", (*Session).cmdPDF},
		"search":     {"search [priority:P] [is:done|is:pending] <words>", "find tasks", (*Session).cmdSearch},
		"profile":    {"profile <name> <age>", "show a profile summary", (*Session).cmdProfile},
		"countdown":  {"countdown", "run the productivity countdown", (*Session).cmdCountdown},
		"motivate":   {"motivate", "show quotes and pending tasks", (*Session).cmdMotivate},
		"theme":      {"theme", "switch between light and dark", (*Session).cmdTheme},
		"help":       {"help", "list commands", (*Session).cmdHelp},
	}
}

// execute runs one command line. quit is true for quit/exit.
func (s *Session) execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	name, args := strings.ToLower(fields[0]), fields[1:]

	if name == "quit" || name == "exit" {
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", name)
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.RecoverPanic(r)
		}
	}()

	err = cmd.run(s, ctx, args)
	switch {
	case err == nil:
		return false, nil
	case ctx.Err() != nil || errors.Is(err, errors.ErrCodeCanceled):
		return false, err
	case errors.As(err) != nil:
		// Structured errors are reported and the loop goes on.
		logFields := errors.As(err).LogFields()
		logFields["command"] = name
		s.logger.Warn("command failed", logFields)
		fmt.Fprintf(s.out, "Error: %s\n", err.Error())
		return false, nil
	default:
		return false, err
	}
}

func usageError(name string) error {
	return errors.InvalidInput("usage: " + commands[name].usage)
}

func parseID(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, usageError(name)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, errors.InvalidInput(fmt.Sprintf("invalid task id %q", args[0]))
	}
	return id, nil
}

func (s *Session) cmdAdd(_ context.Context, args []string) error {
	priority := s.cfg.Priority()
	if len(args) > 1 {
		if p, err := tasks.ParsePriority(args[0]); err == nil {
			priority = p
			args = args[1:]
		}
	}

	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(s.out, "Please enter a task!")
		return nil
	}
	task, err := s.store.Add(text, priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added task %d.\n", task.ID)
	return s.refresh()
}

func (s *Session) cmdToggle(_ context.Context, args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}
	if !s.store.Toggle(id) {
		fmt.Fprintf(s.out, "Task %d not found.\n", id)
		return nil
	}
	if task, err := s.store.Get(id); err == nil && task.Completed {
		fmt.Fprintln(s.out, panels.FloatingMessage(s.rng))
	}
	return s.refresh()
}

func (s *Session) cmdRemove(ctx context.Context, args []string) error {
	id, err := parseID("rm", args)
	if err != nil {
		return err
	}
	task, err := s.store.Get(id)
	if errors.Is(err, errors.ErrCodeNotFound) {
		fmt.Fprintf(s.out, "Task %d not found.\n", id)
		return nil
	}

	ok, err := s.confirm(ctx, fmt.Sprintf("Are you sure you want to delete %q?", task.Text))
	if err != nil || !ok {
		return err
	}
	if !s.store.Remove(id) {
		fmt.Fprintf(s.out, "Task %d not found.\n", id)
		return nil
	}
	return s.refresh()
}

func (s *Session) cmdClearDone(ctx context.Context, _ []string) error {
	completed := s.store.Stats().Completed
	if completed == 0 {
		fmt.Fprintln(s.out, "No completed tasks to clear!")
		return nil
	}
	ok, err := s.confirm(ctx, fmt.Sprintf("Remove %d completed task(s)?", completed))
	if err != nil || !ok {
		return err
	}
	removed := s.store.ClearCompleted()
	fmt.Fprintf(s.out, "Removed %d completed task(s).\n", removed)
	return s.refresh()
}

func (s *Session) cmdClearAll(ctx context.Context, _ []string) error {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, "No tasks to clear!")
		return nil
	}
	ok, err := s.confirm(ctx, "Are you sure you want to remove all tasks? This cannot be undone!")
	if err != nil || !ok {
		return err
	}
	removed := s.store.ClearAll()
	fmt.Fprintf(s.out, "Removed %d task(s).\n", removed)
	return s.refresh()
}

func (s *Session) cmdList(_ context.Context, _ []string) error {
	return s.renderer.Tasks(s.store.List())
}

func (s *Session) cmdStats(_ context.Context, _ []string) error {
	return s.renderer.Stats(s.store.Stats())
}

func (s *Session) cmdSummary(_ context.Context, _ []string) error {
	return s.renderer.Summary(s.store.List(), s.store.Stats())
}

func (s *Session) cmdPDF(_ context.Context, args []string) error {
	path := s.cfg.Display.SummaryPDF
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}
	if path == "" {
		return usageError("pdf")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "cannot create "+path)
	}
	if err := render.SummaryPDF(f, s.store.List(), s.store.Stats()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing "+path)
	}
	fmt.Fprintf(s.out, "Summary written to %s\n", path)
	return nil
}

func (s *Session) cmdSearch(ctx context.Context, args []string) error {
	if s.index == nil || !s.cfg.Search.Enabled {
		fmt.Fprintln(s.out, "Search is disabled.")
		return nil
	}

	filter := search.Filter{Limit: s.cfg.Search.Limit}
	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "priority:"):
			p, err := tasks.ParsePriority(strings.TrimPrefix(arg, "priority:"))
			if err != nil {
				return err
			}
			filter.Priority = p
		case arg == "is:done" || arg == "is:pending":
			done := arg == "is:done"
			filter.Completed = &done
		default:
			words = append(words, arg)
		}
	}
	if len(words) == 0 {
		return usageError("search")
	}

	ids, err := s.index.Search(ctx, strings.Join(words, " "), filter)
	if err != nil {
		return err
	}
	var hits []tasks.Task
	for _, id := range ids {
		if task, err := s.store.Get(id); err == nil {
			hits = append(hits, task)
		}
	}
	if len(hits) == 0 {
		fmt.Fprintln(s.out, "No matching tasks.")
		return nil
	}
	return s.renderer.Tasks(hits)
}

func (s *Session) cmdProfile(_ context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("profile")
	}
	name := strings.Join(args[:len(args)-1], " ")
	text, err := panels.Profile(name, args[len(args)-1])
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, text)
	return nil
}

func (s *Session) cmdCountdown(_ context.Context, _ []string) error {
	fmt.Fprint(s.out, panels.Countdown())
	return nil
}

func (s *Session) cmdMotivate(_ context.Context, _ []string) error {
	fmt.Fprint(s.out, panels.Motivation(s.rng, s.store.Pending()))
	return nil
}

func (s *Session) cmdTheme(_ context.Context, _ []string) error {
	s.theme = s.renderer.ToggleTheme()
	fmt.Fprintf(s.out, "Theme: %s\n", s.theme)
	return s.refresh()
}

func (s *Session) cmdHelp(_ context.Context, _ []string) error {
	for _, name := range commandOrder {
		if name == "quit" {
			fmt.Fprintf(s.out, "  %-50s %s\n", "quit", "leave")
			continue
		}
		cmd := commands[name]
		fmt.Fprintf(s.out, "  %-50s %s\n", cmd.usage, cmd.help)
	}
	return nil
}
