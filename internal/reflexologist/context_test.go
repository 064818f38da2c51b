package reflexologist

import (
	"testing"

	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, DefaultDomainContext, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name              string
		cpu, network, ops int
		want              DomainContext
	}{
		{"quiet", 25, 6, 10, DomainContext{"Low", "Low", "Low"}},
		{"moderate", 45, 12, 120, DomainContext{"Moderate", "Low to Medium", "Moderate"}},
		{"busy", 55, 20, 400, DomainContext{"High", "Medium", "High"}},
		{"saturated", 68, 24, 900, DomainContext{"High", "High", "High"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := []*model.SystemMetric{
				{CPUUsage: tt.cpu, NetworkUsage: tt.network, OperationsCount: tt.ops},
				{CPUUsage: tt.cpu, NetworkUsage: tt.network, OperationsCount: tt.ops},
			}
			assert.Equal(t, tt.want, Summarize(metrics))
		})
	}
}
