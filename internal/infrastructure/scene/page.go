package scene

import (
	"sync"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Page is an in-memory document that records every event dispatched to it.
type Page struct {
	host string

	mu     sync.Mutex
	events []*entity.NativeEvent
}

var _ port.Page = (*Page)(nil)

// NewPage creates a page served from host.
func NewPage(host string) *Page {
	return &Page{host: host}
}

// Host returns the page hostname.
func (p *Page) Host() string { return p.host }

// Dispatch records ev.
func (p *Page) Dispatch(ev *entity.NativeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

// Events returns the dispatched events in order.
func (p *Page) Events() []*entity.NativeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*entity.NativeEvent(nil), p.events...)
}
