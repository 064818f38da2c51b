// Package reflexologist produces the placeholder analysis attached to a
// completed monetization ritual. The output is derived from stored figures
// with fixed rules; no model is consulted.
package reflexologist

import (
	"encoding/json"
	"fmt"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// Thresholds for the recommendation rules.
const (
	HighCPUPercent      = 60
	HighOperationVolume = 1000
)

const symbolicInsight = "Analysis indicates symbolic credit tracking is optimal for your domain flow patterns. " +
	"This approach provides detailed metrics without introducing financial friction to user operations."

// Input is everything the analysis looks at.
type Input struct {
	Ritual  *model.Ritual
	Tribute *model.TributeConfig
	Metrics []*model.SystemMetric
}

// Insights is the JSON document stored on the ritual.
type Insights struct {
	RecommendedMode string   `json:"recommendedMode"`
	KeyInsight      string   `json:"keyInsight"`
	DaysAnalyzed    int      `json:"daysAnalyzed"`
	DataTypes       []string `json:"dataTypes"`
	AverageCPU      int      `json:"averageCpu"`
	Operations      int      `json:"operations"`
	CurrentMode     string   `json:"currentMode,omitempty"`
}

// Result is the outcome of an analysis.
type Result struct {
	Mode     model.TributeMode
	Insights Insights
}

// JSON encodes the insights for storage.
func (r Result) JSON() (json.RawMessage, error) {
	b, err := json.Marshal(r.Insights)
	if err != nil {
		return nil, fmt.Errorf("marshaling insights: %w", err)
	}
	return b, nil
}

// Analyze recommends a tribute mode. Rules are checked in order:
// sustained high CPU with resource usage selected suggests friction, heavy
// operation volume with operation frequency selected suggests royalty, a
// domain-context-only selection suggests donation, and everything else
// stays symbolic.
func Analyze(in Input) Result {
	var (
		cpuTotal, ops int
		avgCPU        int
	)
	for _, m := range in.Metrics {
		cpuTotal += m.CPUUsage
		ops += m.OperationsCount
	}
	if len(in.Metrics) > 0 {
		avgCPU = cpuTotal / len(in.Metrics)
	}

	selected := map[string]bool{}
	var labels []string
	days := 0
	if in.Ritual != nil {
		days = in.Ritual.DaysAnalyzed
		for _, tag := range in.Ritual.DataSelection {
			selected[tag] = true
			labels = append(labels, model.SelectionLabel(tag))
		}
	}
	if labels == nil {
		labels = []string{}
	}

	mode, insight := model.ModeSymbolic, symbolicInsight
	switch {
	case selected[model.SelectResourceUsage] && avgCPU > HighCPUPercent:
		mode = model.ModeFriction
		insight = fmt.Sprintf("Average CPU load of %d%% points to resource contention. "+
			"Friction credits discourage bursty workloads while keeping access open.", avgCPU)
	case selected[model.SelectOperationFrequency] && ops > HighOperationVolume:
		mode = model.ModeRoyalty
		insight = fmt.Sprintf("%d operations over the analyzed window show steady reuse. "+
			"A royalty model reflects the value returned to the domain.", ops)
	case len(selected) == 1 && selected[model.SelectDomainContext]:
		mode = model.ModeDonation
		insight = "Domain context alone does not justify metered charges. " +
			"Voluntary donations keep the relationship with contributors informal."
	}

	res := Result{
		Mode: mode,
		Insights: Insights{
			RecommendedMode: mode.DisplayName(),
			KeyInsight:      insight,
			DaysAnalyzed:    days,
			DataTypes:       labels,
			AverageCPU:      avgCPU,
			Operations:      ops,
		},
	}
	if in.Tribute != nil {
		res.Insights.CurrentMode = string(in.Tribute.Mode)
	}
	return res
}

// Override replaces the recommended mode while keeping the computed figures.
func (r Result) Override(mode model.TributeMode) Result {
	if mode == "" || mode == r.Mode {
		return r
	}
	r.Mode = mode
	r.Insights.RecommendedMode = mode.DisplayName()
	r.Insights.KeyInsight = fmt.Sprintf("Operator selected %s over the computed recommendation.", mode.DisplayName())
	return r
}
