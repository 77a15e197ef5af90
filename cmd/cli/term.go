package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"retail-dashboard/internal/render"
	"retail-dashboard/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a7f37")).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#cf222e")).Bold(true)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706")).Bold(true)
	activeStyle  = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	tabStyle     = lipgloss.NewStyle().Padding(0, 1)
)

func toneStyle(t render.Tone) lipgloss.Style {
	switch t {
	case render.ToneGood:
		return goodStyle
	case render.ToneBad:
		return badStyle
	default:
		return neutralStyle
	}
}

// terminal renders the dashboard sinks as text.
type terminal struct {
	out io.Writer
	err io.Writer
}

func (t *terminal) Reset() {}

func (t *terminal) Show(p render.Panel) {
	fmt.Fprintln(t.out, formatPanel(p))
}

func (t *terminal) Alert(msg string) {
	fmt.Fprintln(t.err, alertStyle.Render("! "+msg))
}

func (t *terminal) SetStatus(s ui.Status) {
	style := neutralStyle
	switch s.Kind {
	case ui.StatusSuccess:
		style = goodStyle
	case ui.StatusError:
		style = badStyle
	}
	fmt.Fprintln(t.out, style.Render(s.Text))
	for _, d := range s.Details {
		fmt.Fprintln(t.out, d)
	}
}

func (t *terminal) NavigateAfter(route string, delay time.Duration) {
	fmt.Fprintf(t.out, "Dashboard ready at %s (redirect after %s)\n", route, delay)
}

func formatPanel(p render.Panel) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(string(p.Type)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Revenue:"), toneStyle(p.Revenue.Tone).Render(p.Revenue.Text))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Demand: "), p.Demand)
	for _, m := range p.Metrics {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(m.Label+":"), m.Value)
	}
	b.WriteString(p.Recommendation)
	return b.String()
}

func formatTabs(states []ui.TabState) string {
	cells := make([]string, 0, len(states))
	for _, s := range states {
		if s.Active {
			cells = append(cells, activeStyle.Render(s.Label))
		} else {
			cells = append(cells, tabStyle.Render(s.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
