package idgen

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Snowflake layout: 41 bits of milliseconds since epoch, 10 bits of worker id,
// 12 bits of sequence.
const (
	epoch          = int64(1704067200000) // 2024-01-01T00:00:00Z
	workerIDBits   = 10
	sequenceBits   = 12
	MaxWorkerID    = -1 ^ (-1 << workerIDBits)
	maxSequence    = -1 ^ (-1 << sequenceBits)
	workerIDShift  = sequenceBits
	timestampShift = sequenceBits + workerIDBits
)

// Generator produces monotonically increasing ids that are unique per worker.
type Generator struct {
	mu        sync.Mutex
	now       func() time.Time
	timestamp int64
	workerID  int64
	sequence  int64
}

// New creates a generator for the given worker id (0..MaxWorkerID).
func New(workerID int64) (*Generator, error) {
	if workerID < 0 || workerID > MaxWorkerID {
		return nil, fmt.Errorf("worker id must be between 0 and %d, got %d", MaxWorkerID, workerID)
	}
	return &Generator{workerID: workerID, now: time.Now}, nil
}

// MustNew is New for worker ids known to be valid. It panics otherwise.
func MustNew(workerID int64) *Generator {
	g, err := New(workerID)
	if err != nil {
		panic(err)
	}
	return g
}

// WithClock replaces the time source. Used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
	return g
}

// NextID returns the next id. If the clock goes backwards the last timestamp
// is reused so ids never repeat.
func (g *Generator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()
	if now < g.timestamp {
		now = g.timestamp
	}

	if now == g.timestamp {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			now = g.timestamp + 1
		}
	} else {
		g.sequence = 0
	}
	g.timestamp = now

	return ((now - epoch) << timestampShift) | (g.workerID << workerIDShift) | g.sequence
}

// Next returns "<prefix>-<digits>", the visible settlement id format.
func (g *Generator) Next(prefix string) string {
	return prefix + "-" + strconv.FormatInt(g.NextID(), 10)
}
