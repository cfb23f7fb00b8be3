package jsonfix

import (
	"sync"

	"github.com/google/uuid"
)

// Snapshot is a document tagged with the order in which it was requested.
type Snapshot struct {
	ID       uuid.UUID
	Seq      uint64
	Document Document
}

// Session holds the current document of one editor. When checks overlap, the
// most recently requested one wins regardless of completion order.
type Session struct {
	opts []Option

	mu      sync.Mutex
	seq     uint64 // last sequence number handed out
	current Snapshot
}

// NewSession returns an empty session; opts apply to every check and repair.
func NewSession(opts ...Option) *Session {
	return &Session{
		opts:    opts,
		current: Snapshot{Document: Document{State: StateEmpty}},
	}
}

// begin hands out the next sequence number. s.mu must be held.
func (s *Session) begin() Snapshot {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	s.seq++
	return Snapshot{ID: id, Seq: s.seq}
}

func (s *Session) commit(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Seq <= s.current.Seq {
		return false
	}
	s.current = snap
	return true
}

// Check checks text and makes it current unless a later request already
// committed. It reports whether the snapshot became current.
func (s *Session) Check(text string) (Snapshot, bool) {
	s.mu.Lock()
	snap := s.begin()
	s.mu.Unlock()

	snap.Document = Check(text, s.opts...)
	return snap, s.commit(snap)
}

// Repair repairs the current document and makes the result current unless a
// later request already committed. While an earlier request is still pending
// nothing is repaired and Repair returns the current snapshot and false.
func (s *Session) Repair() (Snapshot, bool) {
	s.mu.Lock()
	base := s.current
	if s.seq != base.Seq {
		s.mu.Unlock()
		return base, false
	}
	snap := s.begin()
	s.mu.Unlock()

	snap.Document = base.Document.Repair(s.opts...)
	return snap, s.commit(snap)
}

// Current returns the current snapshot.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
