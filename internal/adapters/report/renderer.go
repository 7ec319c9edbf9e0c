// Package report renders a per-frame summary of a streaming session.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/tilestream/internal/ui/output"
	"go.trai.ch/tilestream/internal/ui/style"
)

// Status describes what a frame's traversal did with the result.
type Status string

const (
	// StatusTraversed means a new result was published.
	StatusTraversed Status = "traversed"
	// StatusReused means the previous result stayed in effect.
	StatusReused Status = "reused"
)

// Frame is the outcome of one frame.
type Frame struct {
	Number    uint64
	Status    Status
	Selected  []string
	Requested []string
	Empty     []string

	Loaded  int
	Failed  int
	Bytes   int
	Evicted int
}

// Summary is the outcome of a whole session.
type Summary struct {
	RunID    string
	Source   string
	Frames   int
	Tiles    int
	Loaded   int
	Failed   int
	Bytes    int
	Evicted  int
	Canceled []uint64
}

// Renderer writes frame lines and the session summary.
type Renderer struct {
	out    *termenv.Output
	detail bool
}

// New creates a Renderer on w. With detail, the tile ids of every set are listed.
func New(w io.Writer, detail bool) *Renderer {
	return &Renderer{
		out:    output.NewWithProfile(w, output.ColorProfileANSI),
		detail: detail,
	}
}

// Frame writes one frame line.
func (r *Renderer) Frame(f *Frame) error {
	var b strings.Builder

	fmt.Fprintf(&b, "frame %d", f.Number)
	if f.Status == StatusReused {
		b.WriteString(" " + r.paint(style.Tilde+" reused", style.Slate))
	}
	fmt.Fprintf(&b, "  %s  %s  %s",
		r.paint(fmt.Sprintf("%s %d selected", style.Check, len(f.Selected)), style.Green),
		r.paint(fmt.Sprintf("%s %d requested", style.Dot, len(f.Requested)), style.Iris),
		r.paint(fmt.Sprintf("%s %d empty", style.Circle, len(f.Empty)), style.Slate),
	)
	if f.Loaded > 0 || f.Failed > 0 {
		fmt.Fprintf(&b, "  loaded %d (%d B)", f.Loaded, f.Bytes)
	}
	if f.Failed > 0 {
		b.WriteString("  " + r.paint(fmt.Sprintf("%s %d failed", style.Cross, f.Failed), style.Red))
	}
	if f.Evicted > 0 {
		fmt.Fprintf(&b, "  evicted %d", f.Evicted)
	}
	b.WriteString("\n")

	if r.detail {
		writeIDs(&b, "selected", f.Selected)
		writeIDs(&b, "requested", f.Requested)
		writeIDs(&b, "empty", f.Empty)
	}

	_, err := r.out.WriteString(b.String())
	return err
}

// Summary writes the closing block.
func (r *Renderer) Summary(s *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", r.paint("session "+s.RunID, style.Iris))
	fmt.Fprintf(&b, "  source    %s\n", s.Source)
	fmt.Fprintf(&b, "  frames    %d\n", s.Frames)
	fmt.Fprintf(&b, "  tiles     %d materialized\n", s.Tiles)
	fmt.Fprintf(&b, "  content   %d loaded, %d failed, %d B\n", s.Loaded, s.Failed, s.Bytes)
	fmt.Fprintf(&b, "  evicted   %d\n", s.Evicted)
	if len(s.Canceled) > 0 {
		parts := make([]string, 0, len(s.Canceled))
		for _, f := range s.Canceled {
			parts = append(parts, fmt.Sprint(f))
		}
		fmt.Fprintf(&b, "  %s\n", r.paint(style.Warning+" canceled frames "+strings.Join(parts, ", "), style.Yellow))
	}

	_, err := r.out.WriteString(b.String())
	return err
}

func (r *Renderer) paint(s string, color lipgloss.Color) string {
	return r.out.String(s).Foreground(termenv.RGBColor(string(color))).String()
}

func writeIDs(b *strings.Builder, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(b, "    %-9s %s\n", label, strings.Join(ids, " "))
}
