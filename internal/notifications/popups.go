package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"blogdeck/internal/core"
)

type Popup struct {
	ID           int64
	Notification core.Notification
	ShownAt      time.Time
}

// Popups is the transient on-screen window: at most Config.PopupLimit
// visible at once, the oldest evicted when one more arrives, each
// self-dismissing after Config.PopupTTL whether or not it was read.
type Popups struct {
	Logger *slog.Logger
	Config *core.Config

	OnChange func([]Popup)

	mu     sync.Mutex
	cb     sync.Mutex
	next   int64
	active []Popup
	timers map[int64]*time.Timer
}

func (p *Popups) Init(_ context.Context) error {
	p.Logger = p.Logger.With("component", "notifications.Popups")
	p.timers = map[int64]*time.Timer{}
	return nil
}

func (p *Popups) Shutdown(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
	p.active = nil
	return nil
}

func (p *Popups) Show(n core.Notification) {
	p.mu.Lock()

	p.next++
	popup := Popup{ID: p.next, Notification: n, ShownAt: time.Now()}
	p.active = append(p.active, popup)

	// FIFO eviction keeps the window at the cap.
	for len(p.active) > p.Config.PopupLimit {
		evicted := p.active[0]
		p.active = p.active[1:]
		if t, ok := p.timers[evicted.ID]; ok {
			t.Stop()
			delete(p.timers, evicted.ID)
		}
	}

	id := popup.ID
	p.timers[id] = time.AfterFunc(p.Config.PopupTTL, func() {
		p.Dismiss(id)
	})

	p.deliverLocked()
}

func (p *Popups) Dismiss(id int64) {
	p.mu.Lock()

	kept := p.active[:0]
	for _, popup := range p.active {
		if popup.ID != id {
			kept = append(kept, popup)
		}
	}
	if len(kept) == len(p.active) {
		p.mu.Unlock()
		return
	}
	p.active = kept

	if t, ok := p.timers[id]; ok {
		t.Stop()
		delete(p.timers, id)
	}
	p.deliverLocked()
}

func (p *Popups) Active() []Popup {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Popup, len(p.active))
	copy(out, p.active)
	return out
}

// deliverLocked hands the current window to OnChange and releases the
// state lock. The callback lock is taken before the state lock goes, so
// snapshots reach OnChange in the order they were produced and a slow
// renderer can never regress to an older window. OnChange itself runs
// without the state lock held.
func (p *Popups) deliverLocked() {
	if p.OnChange == nil {
		p.mu.Unlock()
		return
	}
	snapshot := make([]Popup, len(p.active))
	copy(snapshot, p.active)

	p.cb.Lock()
	p.mu.Unlock()
	p.OnChange(snapshot)
	p.cb.Unlock()
}
