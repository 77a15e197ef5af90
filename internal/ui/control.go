package ui

import "sync"

// Trigger is the control whose activation starts a request. Its label and
// enabled state reflect the request lifecycle.
type Trigger interface {
	Label() string
	Disabled() bool
	// SetBusy disables the control and shows label until Restore.
	SetBusy(label string)
	// Restore re-enables the control with the label it had before SetBusy.
	Restore()
}

// Button is a Trigger held in memory. Surfaces render its state.
type Button struct {
	mu       sync.Mutex
	label    string
	idle     string
	disabled bool
}

func NewButton(label string) *Button {
	return &Button{label: label, idle: label}
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

func (b *Button) SetBusy(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.disabled {
		b.idle = b.label
	}
	b.label = label
	b.disabled = true
}

func (b *Button) Restore() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = b.idle
	b.disabled = false
}

// TryAcquire disables the button with label unless it is already disabled.
// It reports whether the caller now owns the in-flight window.
func (b *Button) TryAcquire(label string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return false
	}
	b.idle = b.label
	b.label = label
	b.disabled = true
	return true
}
