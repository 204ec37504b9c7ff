package entity

import "time"

// JournalEntry records one finished drag gesture.
type JournalEntry struct {
	OperationID OperationID
	Source      SourceID
	FromZone    ZoneID
	ToZone      ZoneID
	Area        AreaID
	Index       *int
	Position    DropPosition
	Kinds       []PayloadKind
	Cancelled   bool
	StartedAt   time.Time
	EndedAt     time.Time
}

// Duration returns how long the gesture lasted.
func (e JournalEntry) Duration() time.Duration {
	if e.EndedAt.Before(e.StartedAt) {
		return 0
	}
	return e.EndedAt.Sub(e.StartedAt)
}

// NewJournalEntry builds an entry from a finished operation snapshot.
func NewJournalEntry(snap OperationSnapshot, endedAt time.Time) JournalEntry {
	entry := JournalEntry{
		OperationID: snap.ID,
		Source:      snap.Source,
		FromZone:    snap.FromZone,
		ToZone:      snap.ToZone,
		Area:        snap.Area,
		Position:    snap.Position,
		Kinds:       append([]PayloadKind(nil), snap.Kinds...),
		Cancelled:   snap.Cancelled,
		StartedAt:   snap.StartedAt,
		EndedAt:     endedAt,
	}
	if snap.HasIndex {
		idx := snap.Index
		entry.Index = &idx
	}
	return entry
}
