// Package model defines all shared domain types for FlowLand Steward.
package model

import (
	"encoding/json"
	"time"
)

// TributeMode is the active monetization strategy of the domain.
type TributeMode string

const (
	ModeSymbolic TributeMode = "symbolic"
	ModeDonation TributeMode = "donation"
	ModeRoyalty  TributeMode = "royalty"
	ModeFriction TributeMode = "friction"
)

// TributeModes lists every accepted mode in display order.
var TributeModes = []TributeMode{ModeSymbolic, ModeDonation, ModeRoyalty, ModeFriction}

// AgentStatus is the lifecycle state of an agent record.
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentMetering AgentStatus = "metering"
	AgentDormant  AgentStatus = "dormant"
	AgentInactive AgentStatus = "inactive"
)

// AgentKind identifies the role an agent plays. It is fixed at creation time
// and drives kind-specific display fields.
type AgentKind string

const (
	KindIntegrityWatcher AgentKind = "integrity_watcher"
	KindTributeSteward   AgentKind = "tribute_steward"
	KindReflexologist    AgentKind = "reflexologist"
	KindOther            AgentKind = "other"
)

// LogLevel is the severity of an activity log entry.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// RitualStatus is the lifecycle state of a monetization ritual.
type RitualStatus string

const (
	RitualPending   RitualStatus = "pending"
	RitualCompleted RitualStatus = "completed"
)

// IntegrityStatus is the overall verdict of an integrity check.
type IntegrityStatus string

const (
	IntegrityHealthy IntegrityStatus = "healthy"
	IntegrityWarning IntegrityStatus = "warning"
)

// Data selection tags accepted by a ritual.
const (
	SelectResourceUsage      = "resourceUsage"
	SelectOperationFrequency = "operationFrequency"
	SelectDomainContext      = "domainContext"
)

// Agent is a named logical worker. No autonomous process backs it.
type Agent struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Endpoint    string          `json:"endpoint"`
	Status      AgentStatus     `json:"status"`
	Kind        AgentKind       `json:"kind"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config,omitempty"`
	LastActive  *time.Time      `json:"lastActive,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ActivityLog is an append-only audit line, optionally attributed to an agent.
type ActivityLog struct {
	ID        int64           `json:"id"`
	AgentID   *int64          `json:"agentId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message"`
	Level     LogLevel        `json:"level"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// SystemMetric is a point-in-time resource snapshot.
type SystemMetric struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	CPUUsage        int       `json:"cpuUsage"`
	MemoryUsage     int       `json:"memoryUsage"`
	StorageUsage    int       `json:"storageUsage"`
	NetworkUsage    int       `json:"networkUsage"`
	OperationsCount int       `json:"operationsCount"`
}

// TributeConfig is the singleton metering configuration and its counters.
type TributeConfig struct {
	ID                int64       `json:"id"`
	Mode              TributeMode `json:"mode"`
	CreditsAccrued    int64       `json:"creditsAccrued"`
	ResourceUsageMB   int64       `json:"resourceUsageMB"`
	OperationsTracked int64       `json:"operationsTracked"`
	LastRitualDate    *time.Time  `json:"lastRitualDate"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// Default tribute values used when the configuration is first created.
const (
	DefaultCredits    = 230
	DefaultResourceMB = 150
	DefaultOperations = 300
)

// TributeEventKind distinguishes ledger rows.
type TributeEventKind string

const (
	TributeEventMode   TributeEventKind = "mode"
	TributeEventRecord TributeEventKind = "record"
)

// TributeEvent is one row of the append-only tribute ledger.
type TributeEvent struct {
	ID         int64            `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Kind       TributeEventKind `json:"kind"`
	Mode       TributeMode      `json:"mode"`
	Credits    int64            `json:"credits"`
	ResourceMB int64            `json:"resourceMB"`
	Operations int64            `json:"operations"`
}

// TributeDay aggregates the ledger for a single calendar day.
type TributeDay struct {
	Date       string      `json:"date"` // YYYY-MM-DD
	Mode       TributeMode `json:"mode"`
	Credits    int64       `json:"credits"`
	Operations int64       `json:"operations"`
}

// DataSelection is the set of data categories a ritual analyzes.
type DataSelection struct {
	ResourceUsage      bool `json:"resourceUsage"`
	OperationFrequency bool `json:"operationFrequency"`
	DomainContext      bool `json:"domainContext"`
}

// Tags returns the selected categories in canonical order.
func (d DataSelection) Tags() []string {
	tags := make([]string, 0, 3)
	if d.ResourceUsage {
		tags = append(tags, SelectResourceUsage)
	}
	if d.OperationFrequency {
		tags = append(tags, SelectOperationFrequency)
	}
	if d.DomainContext {
		tags = append(tags, SelectDomainContext)
	}
	return tags
}

// Ritual is a monetization analysis run.
type Ritual struct {
	ID              int64           `json:"id"`
	StartDate       time.Time       `json:"startDate"`
	CompletionDate  *time.Time      `json:"completionDate"`
	Status          RitualStatus    `json:"status"`
	DaysAnalyzed    int             `json:"daysAnalyzed"`
	RecommendedMode *TributeMode    `json:"recommendedMode"`
	Insights        json.RawMessage `json:"insights"`
	DataSelection   []string        `json:"dataSelection"`
}

// IntegrityMetric is a named score inside an integrity check.
type IntegrityMetric struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// IntegrityDetails is the structured payload of an integrity check.
type IntegrityDetails struct {
	Metrics            []IntegrityMetric `json:"metrics"`
	ChecksPerformed    int               `json:"checksPerformed"`
	LastAnomaly        *string           `json:"lastAnomaly"`
	SecurityStatus     string            `json:"securityStatus"`
	CheckFrequency     string            `json:"checkFrequency"`
	MonitoringSettings []string          `json:"monitoringSettings"`
}

// IntegrityCheck is a synthesized health snapshot.
type IntegrityCheck struct {
	ID             int64            `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Status         IntegrityStatus  `json:"status"`
	IntegrityScore int              `json:"integrityScore"`
	IssuesFound    int              `json:"issuesFound"`
	Details        IntegrityDetails `json:"details"`
}

// Notification is a human-facing message sent through notify providers.
type Notification struct {
	Type      string            `json:"type"`
	Severity  string            `json:"severity"` // "info", "warning", "critical"
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Subject   string            `json:"subject"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
