// Package progress carries per-file events out of an organize run and
// renders them as console lines.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Kind identifies what happened during a run
type Kind string

const (
	KindFolderCreated Kind = "folder_created"
	KindFileMoved     Kind = "file_moved"
	KindMoveFailed    Kind = "move_failed"
	KindComplete      Kind = "complete"
)

// Event is emitted by the organizer for every folder created, file moved
// and move failure, followed by a single KindComplete.
type Event struct {
	Kind        Kind
	Name        string // file or folder name
	Category    string
	Destination string // final file name inside Category
	Size        int64
	DryRun      bool
	Err         error
	Index       int // 1-based position in the snapshot
	Total       int
	Elapsed     time.Duration
}

// Listener receives progress events synchronously, in run order
type Listener interface {
	Handle(Event)
}

// Recorder keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Handle appends e
func (r *Recorder) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind were recorded
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Printer writes one line per event
type Printer struct {
	writer io.Writer
	mu     sync.Mutex

	folder *color.Color
	moved  *color.Color
	failed *color.Color
	dim    *color.Color
}

// NewPrinter creates a Printer. Color is applied only when useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		writer: w,
		folder: color.New(color.FgCyan),
		moved:  color.New(color.FgGreen),
		failed: color.New(color.FgRed, color.Bold),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.folder, p.moved, p.failed, p.dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Handle prints e. KindComplete is silent; the report covers it.
func (p *Printer) Handle(e Event) {
	if p == nil || p.writer == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case KindFolderCreated:
		fmt.Fprintln(p.writer, p.folder.Sprint(FormatEvent(e)))
	case KindFileMoved:
		fmt.Fprintln(p.writer, p.moved.Sprint(FormatEvent(e)))
	case KindMoveFailed:
		fmt.Fprintln(p.writer, p.failed.Sprint(FormatEvent(e)))
	}
}

// FormatEvent returns the uncolored console line for e
func FormatEvent(e Event) string {
	prefix := ""
	if e.DryRun {
		prefix = "[dry-run] "
	}

	switch e.Kind {
	case KindFolderCreated:
		if e.DryRun {
			return fmt.Sprintf("%s📁 would create folder %s", prefix, e.Name)
		}
		return fmt.Sprintf("📁 created folder %s", e.Name)
	case KindFileMoved:
		dest := e.Category
		if e.Destination != "" && e.Destination != e.Name {
			dest = e.Category + "/" + e.Destination
		}
		return fmt.Sprintf("%s✅ %s -> %s", prefix, e.Name, dest)
	case KindMoveFailed:
		return fmt.Sprintf("%s❌ %s: %v", prefix, e.Name, e.Err)
	case KindComplete:
		return fmt.Sprintf("%sdone in %s", prefix, FormatDuration(e.Elapsed))
	default:
		return string(e.Kind)
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
