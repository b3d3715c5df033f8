package organizer

import (
	"time"

	"github.com/google/uuid"
)

// Move describes one file relocated (or planned, in a dry run)
type Move struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Destination string `json:"destination" yaml:"destination"`
	Size        int64  `json:"size" yaml:"size"`
}

// Renamed reports whether a collision forced a new name
func (m Move) Renamed() bool {
	return m.Destination != m.Name
}

// MoveResult is the outcome of a single move attempt: either Move is
// populated and Err is nil, or Err describes the failure.
type MoveResult struct {
	Move Move
	Err  *MoveError
}

// OK reports whether the move succeeded
func (r MoveResult) OK() bool {
	return r.Err == nil
}

// Run is the state of one organize invocation over a directory
type Run struct {
	ID             string
	Directory      string
	DryRun         bool
	StartedAt      time.Time
	FinishedAt     time.Time
	Organized      int
	BytesMoved     int64
	Moves          []Move
	Errors         []*MoveError
	FoldersCreated []string
	Skipped        int // directories and non-regular entries left in place
}

func newRun(dir string, dryRun bool) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Directory: dir,
		DryRun:    dryRun,
		StartedAt: time.Now(),
		Moves:     []Move{},
		Errors:    []*MoveError{},
	}
}

// record folds one move result into the run
func (r *Run) record(result MoveResult) {
	if !result.OK() {
		r.Errors = append(r.Errors, result.Err)
		return
	}
	r.Organized++
	r.BytesMoved += result.Move.Size
	r.Moves = append(r.Moves, result.Move)
}

func (r *Run) finish() {
	r.FinishedAt = time.Now()
}

// HasErrors reports whether any file failed to move
func (r *Run) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages returns the report line for each error, in encounter order
func (r *Run) ErrorMessages() []string {
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.UserMessage()
	}
	return msgs
}

// Duration returns how long the run took
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// CountByCategory returns the number of organized files per category
func (r *Run) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Moves {
		counts[m.Category]++
	}
	return counts
}
