// Package events publishes machine-facing domain events. Human-facing
// messages go through package notify instead.
package events

import (
	"context"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// Event topic constants
const (
	TopicTributeModeChanged = "flowland.tribute.mode.changed"
	TopicTributeRecorded    = "flowland.tribute.recorded"
	TopicRitualStarted      = "flowland.ritual.started"
	TopicRitualCompleted    = "flowland.ritual.completed"
	TopicIntegrityChecked   = "flowland.integrity.checked"
)

// Event types

type TributeModeChanged struct {
	PreviousMode model.TributeMode    `json:"previous_mode"`
	Tribute      *model.TributeConfig `json:"tribute"`
	At           time.Time            `json:"at"`
}

type TributeRecorded struct {
	Credits    int64                `json:"credits"`
	ResourceMB int64                `json:"resource_mb"`
	Operations int64                `json:"operations"`
	Tribute    *model.TributeConfig `json:"tribute"`
}

type RitualStarted struct {
	Ritual *model.Ritual `json:"ritual"`
}

type RitualCompleted struct {
	Ritual *model.Ritual `json:"ritual"`
}

type IntegrityChecked struct {
	Check *model.IntegrityCheck `json:"check"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
