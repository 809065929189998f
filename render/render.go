// Package render draws a task list and its counters as terminal text.
//
// A Renderer holds no task state. Callers pass it the current List and
// Stats after every mutation.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/tasks"
)

// EmptyListMessage is shown instead of an empty list.
const EmptyListMessage = "No tasks yet. Add your first task above!"

// EmptySummaryMessage is shown instead of an empty summary report.
const EmptySummaryMessage = "No tasks to summarize. Add some tasks first!"

// CreatedLayout formats CreatedAt in lists and reports.
const CreatedLayout = "2006-01-02 15:04:05"

// Theme selects the glyph set.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown theme %q", s))
	}
}

type glyphs struct {
	done    string
	pending string
	heavy   string
	light   string
}

var themeGlyphs = map[Theme]glyphs{
	ThemeLight: {done: "[x]", pending: "[ ]", heavy: "═", light: "─"},
	ThemeDark:  {done: "●", pending: "○", heavy: "━", light: "┄"},
}

// Rating classifies a completion rate: good (>=80), fair (>=50) or low.
func Rating(rate int) string {
	switch {
	case rate >= 80:
		return "good"
	case rate >= 50:
		return "fair"
	default:
		return "low"
	}
}

// Renderer writes views of a task list to w.
type Renderer struct {
	w     io.Writer
	theme Theme
}

// New creates a Renderer. An unknown theme falls back to light.
func New(w io.Writer, theme Theme) *Renderer {
	if _, ok := themeGlyphs[theme]; !ok {
		theme = ThemeLight
	}
	return &Renderer{w: w, theme: theme}
}

// Theme returns the current theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// ToggleTheme switches between light and dark and returns the new theme.
func (r *Renderer) ToggleTheme() Theme {
	if r.theme == ThemeLight {
		r.theme = ThemeDark
	} else {
		r.theme = ThemeLight
	}
	return r.theme
}

func (r *Renderer) glyphs() glyphs {
	return themeGlyphs[r.theme]
}

// Tasks writes one line per task: id, status mark, priority badge, text.
func (r *Renderer) Tasks(list []tasks.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, EmptyListMessage)
		return err
	}

	g := r.glyphs()
	var b strings.Builder
	for _, t := range list {
		mark := g.pending
		action := "Complete"
		if t.Completed {
			mark = g.done
			action = "Undo"
		}
		fmt.Fprintf(&b, "%3d %s %-8s %s  (%s)\n",
			t.ID, mark, "["+strings.ToUpper(string(t.Priority))+"]", t.Text, action)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Stats writes the counters line.
func (r *Renderer) Stats(stats tasks.Statistics) error {
	_, err := fmt.Fprintf(r.w, "Total: %d  Completed: %d  Pending: %d  Rate: %d%% (%s)\n",
		stats.Total, stats.Completed, stats.Pending, stats.CompletionRate, Rating(stats.CompletionRate))
	return err
}

// Refresh redraws the list followed by the counters.
func (r *Renderer) Refresh(list []tasks.Task, stats tasks.Statistics) error {
	if err := r.Tasks(list); err != nil {
		return err
	}
	return r.Stats(stats)
}

// Summary writes the task summary report.
func (r *Renderer) Summary(list []tasks.Task, stats tasks.Statistics) error {
	_, err := io.WriteString(r.w, r.SummaryText(list, stats))
	return err
}

// SummaryText builds the task summary report.
func (r *Renderer) SummaryText(list []tasks.Task, stats tasks.Statistics) string {
	if len(list) == 0 {
		return EmptySummaryMessage + "\n"
	}

	g := r.glyphs()
	var b strings.Builder
	b.WriteString("TASK SUMMARY REPORT\n")
	b.WriteString(strings.Repeat(g.heavy, 40) + "\n\n")

	for i, t := range list {
		fmt.Fprintf(&b, "%d. [%s] [%s] %s\n", i+1, t.Status(), strings.ToUpper(string(t.Priority)), t.Text)
		fmt.Fprintf(&b, "   Created: %s\n\n", formatCreated(t.CreatedAt))
	}

	b.WriteString("STATISTICS:\n")
	b.WriteString(strings.Repeat(g.light, 20) + "\n")
	for _, p := range tasks.Priorities {
		fmt.Fprintf(&b, "%s Priority: %d\n", capitalize(string(p)), stats.PriorityCounts[p])
	}
	fmt.Fprintf(&b, "\nCompletion Rate: %d%%\n", stats.CompletionRate)
	return b.String()
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(CreatedLayout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
