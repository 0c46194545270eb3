package services

import (
	"sync/atomic"
	"time"

	"hh-server/models/promotion"
)

// Snapshot is one complete, parsed copy of both sheets. It is never mutated
// after it is stored.
type Snapshot struct {
	Venues    []promotion.Venue
	Offers    []promotion.Offer
	FetchedAt time.Time
}

// SnapshotStore publishes snapshots from the refresher to readers. There is
// one writer; readers always see a whole snapshot.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load returns the current snapshot, or an empty one before the first refresh.
func (s *SnapshotStore) Load() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return &Snapshot{}
}

// Loaded reports whether any snapshot has been stored.
func (s *SnapshotStore) Loaded() bool {
	return s.current.Load() != nil
}

func (s *SnapshotStore) Store(snap *Snapshot) {
	s.current.Store(snap)
}
