package entity

import "sort"

// PayloadKind names one typed entry of a drag payload.
type PayloadKind string

const (
	KindResource PayloadKind = "resource"
	KindNote     PayloadKind = "note"
	KindString   PayloadKind = "string"
	KindURL      PayloadKind = "url"
	KindHTML     PayloadKind = "html"
	KindFiles    PayloadKind = "files"
)

// Payload is the immutable description of what is being dragged.
// It is owned by the drag source for the lifetime of the operation.
type Payload struct {
	entries map[PayloadKind]any
}

// NewPayload copies entries into a new payload.
func NewPayload(entries map[PayloadKind]any) Payload {
	p := Payload{entries: make(map[PayloadKind]any, len(entries))}
	for k, v := range entries {
		p.entries[k] = v
	}
	return p
}

// Get returns the entry for kind.
func (p Payload) Get(kind PayloadKind) (any, bool) {
	v, ok := p.entries[kind]
	return v, ok
}

// String returns the entry for kind when it holds a string.
func (p Payload) String(kind PayloadKind) (string, bool) {
	v, ok := p.entries[kind]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether the payload carries an entry of the given kind.
func (p Payload) Has(kind PayloadKind) bool {
	_, ok := p.entries[kind]
	return ok
}

// Kinds returns the entry kinds in lexical order.
func (p Payload) Kinds() []PayloadKind {
	kinds := make([]PayloadKind, 0, len(p.entries))
	for k := range p.entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of entries.
func (p Payload) Len() int {
	return len(p.entries)
}
