package metering

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample_WithinBands(t *testing.T) {
	s := NewSampler(42)
	for range 1000 {
		m := s.Sample(12)
		assert.True(t, CPUBand.Contains(m.CPUUsage), "cpu %d", m.CPUUsage)
		assert.True(t, MemoryBand.Contains(m.MemoryUsage), "memory %d", m.MemoryUsage)
		assert.True(t, StorageBand.Contains(m.StorageUsage), "storage %d", m.StorageUsage)
		assert.True(t, NetworkBand.Contains(m.NetworkUsage), "network %d", m.NetworkUsage)
		assert.Equal(t, 12, m.OperationsCount)
	}
}

func TestSample_Deterministic(t *testing.T) {
	a, b := NewSampler(7), NewSampler(7)
	for range 20 {
		assert.Equal(t, a.Sample(1), b.Sample(1))
	}
}

func TestSample_NegativeOperationsClamped(t *testing.T) {
	assert.Equal(t, 0, NewSampler(1).Sample(-5).OperationsCount)
}

func TestSample_CoversBandEdges(t *testing.T) {
	s := NewSampler(3)
	seen := map[int]bool{}
	for range 5000 {
		seen[s.Sample(0).NetworkUsage] = true
	}
	assert.True(t, seen[NetworkBand.Min])
	assert.True(t, seen[NetworkBand.Max])
	assert.Len(t, seen, NetworkBand.Max-NetworkBand.Min+1)
}

func TestNewSampler_ZeroSeed(t *testing.T) {
	s := NewSampler(0)
	assert.True(t, CPUBand.Contains(s.Sample(0).CPUUsage))
}

func TestSampler_Concurrent(t *testing.T) {
	s := NewSampler(9)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				m := s.Sample(1)
				assert.True(t, StorageBand.Contains(m.StorageUsage))
			}
		})
	}
	wg.Wait()
}

func TestBandContains(t *testing.T) {
	b := Band{5, 10}
	assert.True(t, b.Contains(5))
	assert.True(t, b.Contains(10))
	assert.False(t, b.Contains(4))
	assert.False(t, b.Contains(11))
}

func BenchmarkSample(b *testing.B) {
	s := NewSampler(1)
	for b.Loop() {
		s.Sample(100)
	}
}
