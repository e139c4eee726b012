package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const divider = "──────────────────────────────────────────────────────"

// styles is the set of lipgloss styles bound to one output writer, so that
// colour is only emitted when that writer is a terminal.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	faint   lipgloss.Style
	ok      lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
}

// Option configures text rendering.
type Option func(*options)

type options struct {
	renderer *lipgloss.Renderer
}

// WithRenderer styles output with r instead of a renderer detected from the
// destination writer. Use it when rendering into a buffer that is later
// copied to a terminal.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

func newStyles(w io.Writer, opts []Option) styles {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r := o.renderer
	if r == nil {
		r = lipgloss.NewRenderer(w)
	}

	return styles{
		title:   r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")),
		value:   r.NewStyle(),
		faint:   r.NewStyle().Faint(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		header:  r.NewStyle().Bold(true).Underline(true),
	}
}
