// Package trace records the frames an effect produces as JSON lines so runs
// can be compared and inspected after the fact.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/csheth/truefocus/internal/focus"
)

// Entry is one line of a trace.
type Entry struct {
	OffsetMS int64       `json:"offsetMs"`
	Phase    string      `json:"phase"`
	Index    int         `json:"index"`
	Opacity  float64     `json:"opacity"`
	Rect     *focus.Rect `json:"rect,omitempty"`
	Visible  bool        `json:"visible"`
}

// Offset is the time since the first recorded frame.
func (e Entry) Offset() time.Duration {
	return time.Duration(e.OffsetMS) * time.Millisecond
}

func (e Entry) sameFrame(o Entry) bool {
	e.OffsetMS, o.OffsetMS = 0, 0
	if (e.Rect == nil) != (o.Rect == nil) {
		return false
	}
	if e.Rect != nil && *e.Rect != *o.Rect {
		return false
	}
	e.Rect, o.Rect = nil, nil
	return e == o
}

// NewEntry converts a frame into a trace entry.
func NewEntry(f focus.Frame, offset time.Duration) Entry {
	e := Entry{
		OffsetMS: offset.Milliseconds(),
		Phase:    f.Phase.String(),
		Index:    f.Index,
		Opacity:  f.Opacity,
		Visible:  f.FrameVisible,
	}
	if !f.Rect.Empty() {
		rect := f.Rect
		e.Rect = &rect
	}
	return e
}

// Recorder writes entries to an io.Writer, skipping frames that repeat the
// previous one. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	enc     *json.Encoder
	clock   clockwork.Clock
	start   time.Time
	started bool
	last    *Entry
	count   int
}

// NewRecorder returns a recorder stamping offsets from clock. A nil clock
// means the real clock.
func NewRecorder(w io.Writer, clock clockwork.Clock) *Recorder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Recorder{enc: json.NewEncoder(w), clock: clock}
}

// Record appends f unless it matches the previously written frame.
func (r *Recorder) Record(f focus.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if !r.started {
		r.start = now
		r.started = true
	}
	entry := NewEntry(f, now.Sub(r.start))
	if r.last != nil && r.last.sameFrame(entry) {
		return nil
	}
	if err := r.enc.Encode(entry); err != nil {
		return fmt.Errorf("write trace entry: %w", err)
	}
	r.last = &entry
	r.count++
	return nil
}

// Len is the number of entries written so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// FrameFunc adapts the recorder for focus.Runner. Write errors are logged.
func (r *Recorder) FrameFunc() focus.FrameFunc {
	return func(f focus.Frame) {
		if err := r.Record(f); err != nil {
			log.Printf("[trace] %v", err)
		}
	}
}

// Read parses a trace written by Recorder. Blank lines are ignored.
func Read(rd io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(rd)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return entries, fmt.Errorf("trace line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
