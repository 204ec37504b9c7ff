package bridge

import (
	"sync"

	"github.com/bnema/dragkit/internal/application/port"
)

// Inbox holds payload metadata pushed by the host, keyed by application
// identifier. Each entry can be taken once.
type Inbox struct {
	mu      sync.Mutex
	entries map[string]port.PayloadMeta
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{entries: make(map[string]port.PayloadMeta)}
}

// Push stores meta under appID, replacing an unconsumed previous push.
func (i *Inbox) Push(appID string, meta port.PayloadMeta) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[appID] = meta
}

// Take removes and returns the metadata for appID.
func (i *Inbox) Take(appID string) (port.PayloadMeta, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	meta, ok := i.entries[appID]
	if ok {
		delete(i.entries, appID)
	}
	return meta, ok
}

// Len returns the number of pending entries.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.entries)
}
