package ui

import (
	"sync"

	"retail-dashboard/internal/model"
)

// Panels is the tab state of the simulator: one visible panel, one active
// tab, and a result area that is cleared on every switch.
type Panels struct {
	mu        sync.Mutex
	active    model.Tab
	hasResult bool
}

func NewPanels() *Panels {
	return &Panels{active: model.TabPrice}
}

// SwitchTab shows tab's panel only. Switching to the active tab again is a no-op
// apart from clearing the result area.
func (p *Panels) SwitchTab(tab model.Tab) error {
	if _, err := model.ParseTab(string(tab)); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = tab
	p.hasResult = false
	return nil
}

func (p *Panels) Active() model.Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Visible reports whether tab's panel is shown.
func (p *Panels) Visible(tab model.Tab) bool {
	return p.Active() == tab
}

// VisibleTabs lists the shown panels; always exactly one.
func (p *Panels) VisibleTabs() []model.Tab {
	return []model.Tab{p.Active()}
}

// MarkResult records that the result area holds a rendering.
func (p *Panels) MarkResult() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasResult = true
}

func (p *Panels) HasResult() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasResult
}

// TabState is a render-ready snapshot of one tab.
type TabState struct {
	ID     model.Tab
	Label  string
	Type   model.SimType
	Active bool
}

func (p *Panels) States() []TabState {
	active := p.Active()
	out := make([]TabState, 0, len(model.Tabs))
	for _, t := range model.Tabs {
		out = append(out, TabState{ID: t, Label: t.Label(), Type: t.SimType(), Active: t == active})
	}
	return out
}
