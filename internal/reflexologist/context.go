package reflexologist

import "github.com/bongona/FlowLandSteward/internal/model"

// DomainContext is a coarse qualitative reading of recent activity.
type DomainContext struct {
	FlowComplexity           string `json:"flowComplexity"`
	ResourceIntensity        string `json:"resourceIntensity"`
	UserInteractionFrequency string `json:"userInteractionFrequency"`
}

// DefaultDomainContext is reported when no metrics have been recorded.
var DefaultDomainContext = DomainContext{
	FlowComplexity:           "Moderate",
	ResourceIntensity:        "Low to Medium",
	UserInteractionFrequency: "High",
}

// Summarize classifies metrics into a DomainContext.
func Summarize(metrics []*model.SystemMetric) DomainContext {
	if len(metrics) == 0 {
		return DefaultDomainContext
	}

	var cpu, network, ops int
	for _, m := range metrics {
		cpu += m.CPUUsage
		network += m.NetworkUsage
		ops += m.OperationsCount
	}
	n := len(metrics)
	avgCPU, avgNetwork, avgOps := cpu/n, network/n, ops/n

	dc := DomainContext{}
	switch {
	case avgOps < 50:
		dc.FlowComplexity = "Low"
	case avgOps < 200:
		dc.FlowComplexity = "Moderate"
	default:
		dc.FlowComplexity = "High"
	}
	switch {
	case avgCPU < 35:
		dc.ResourceIntensity = "Low"
	case avgCPU < 50:
		dc.ResourceIntensity = "Low to Medium"
	case avgCPU <= HighCPUPercent:
		dc.ResourceIntensity = "Medium"
	default:
		dc.ResourceIntensity = "High"
	}
	switch {
	case avgNetwork < 10:
		dc.UserInteractionFrequency = "Low"
	case avgNetwork < 18:
		dc.UserInteractionFrequency = "Moderate"
	default:
		dc.UserInteractionFrequency = "High"
	}
	return dc
}
