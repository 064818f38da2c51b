// Package metering produces the synthetic resource figures shown on the
// dashboard. Nothing is measured; values are drawn from fixed bands.
package metering

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// Band is an inclusive integer range.
type Band struct {
	Min, Max int
}

// Bands used for each sampled field.
var (
	CPUBand     = Band{20, 69}
	MemoryBand  = Band{30, 69}
	StorageBand = Band{10, 39}
	NetworkBand = Band{5, 24}
)

// Sampler draws bounded pseudo-random metric snapshots. It is safe for
// concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler seeded with seed. A zero seed uses the
// current time, so successive processes see different figures.
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Sampler) draw(b Band) int {
	return b.Min + s.rng.IntN(b.Max-b.Min+1)
}

// Sample returns a snapshot with operationsCount set to operations. The
// timestamp is left for the store to stamp.
func (s *Sampler) Sample(operations int) model.SystemMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SystemMetric{
		CPUUsage:        s.draw(CPUBand),
		MemoryUsage:     s.draw(MemoryBand),
		StorageUsage:    s.draw(StorageBand),
		NetworkUsage:    s.draw(NetworkBand),
		OperationsCount: max(operations, 0),
	}
}

// Contains reports whether v lies within b.
func (b Band) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}
