package ui

import (
	"sync"
	"time"

	"retail-dashboard/internal/render"
)

// ResultSink is the simulator's result area.
type ResultSink interface {
	Reset()
	Show(p render.Panel)
	// Alert surfaces a blocking user-facing message.
	Alert(msg string)
}

type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the upload status line plus optional detail lines
// (warnings or missing columns).
type Status struct {
	Kind    StatusKind
	Text    string
	Details []string
}

// StatusSink is the upload form's status area.
type StatusSink interface {
	SetStatus(s Status)
	Alert(msg string)
}

// Navigator moves the user to another route after a delay.
type Navigator interface {
	NavigateAfter(route string, delay time.Duration)
}

// Recorded is what a Recorder has captured so far.
type Recorded struct {
	Resets     int
	Panel      *render.Panel
	Alerts     []string
	Status     *Status
	Route      string
	RouteDelay time.Duration
}

// Recorder implements every sink in memory. It backs tests and the JSON
// rendering of the web surface.
type Recorder struct {
	mu  sync.Mutex
	rec Recorded
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Resets++
	r.rec.Panel = nil
}

func (r *Recorder) Show(p render.Panel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Panel = &p
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Alerts = append(r.rec.Alerts, msg)
}

func (r *Recorder) SetStatus(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Status = &s
}

func (r *Recorder) NavigateAfter(route string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Route = route
	r.rec.RouteDelay = delay
}

// Snapshot returns a copy safe to read while other goroutines write.
func (r *Recorder) Snapshot() Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.rec
	out.Alerts = append([]string(nil), r.rec.Alerts...)
	return out
}
