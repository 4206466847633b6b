// Package idgen produces sortable 64-bit identifiers for files and charts.
// IDs are snowflake-style: millisecond timestamp, node id, per-millisecond
// sequence. Sorting by ID therefore sorts by creation time, which the owner
// indexes rely on.
package idgen

import (
	"errors"
	"sync"
)

const (
	// Layout, high to low: 1 sign bit (unused), 41 bits of milliseconds
	// since Epoch, 10 bits of node id, 12 bits of sequence.
	nodeBits     = 10
	sequenceBits = 12

	maxNodeID   = -1 ^ (-1 << nodeBits)
	maxSequence = -1 ^ (-1 << sequenceBits)

	nodeShift      = sequenceBits
	timestampShift = sequenceBits + nodeBits

	// Epoch is 2024-01-01 00:00:00 UTC in Unix milliseconds.
	Epoch = 1704067200000
)

var (
	ErrNodeIDTooLarge = errors.New("node ID too large")
	ErrClockMovedBack = errors.New("clock moved backwards")
)

// Snowflake is a thread-safe ID generator bound to one node id.
type Snowflake struct {
	mu       sync.Mutex
	clock    Clock
	nodeID   int64
	lastMs   int64
	sequence int64
}

// New returns a generator for nodeID. A nil clock falls back to the
// system clock.
func New(nodeID int64, clock Clock) (*Snowflake, error) {
	if nodeID < 0 || nodeID > int64(maxNodeID) {
		return nil, ErrNodeIDTooLarge
	}
	if clock == nil {
		clock = &SystemClock{}
	}
	return &Snowflake{clock: clock, nodeID: nodeID, lastMs: -1}, nil
}

// Next returns the next ID. It fails only when the clock runs backwards;
// a full sequence within one millisecond spins until the next tick.
func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now < s.lastMs {
		return 0, ErrClockMovedBack
	}

	if now == s.lastMs {
		s.sequence = (s.sequence + 1) & int64(maxSequence)
		if s.sequence == 0 {
			for now <= s.lastMs {
				now = s.clock.Now()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastMs = now

	return ((now - Epoch) << timestampShift) | (s.nodeID << nodeShift) | s.sequence, nil
}
