package events

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	err := pub.Publish(context.Background(), TopicRitualStarted, RitualStarted{})
	assert.NoError(t, err)
	assert.NoError(t, pub.Close())
}

func TestNoopPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
}

func TestNATSPublisher_ImplementsPublisher(t *testing.T) {
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestNew_EmptyURL(t *testing.T) {
	pub, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &NoopPublisher{}, pub)
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	// Reserve a port, then release it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewNATSPublisher("nats://"+addr, nats.Timeout(200*time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to NATS")
}

func TestEventPayloads(t *testing.T) {
	mode := model.ModeRoyalty
	ev := RitualCompleted{Ritual: &model.Ritual{
		ID:              4,
		Status:          model.RitualCompleted,
		DaysAnalyzed:    7,
		RecommendedMode: &mode,
		DataSelection:   []string{model.SelectDomainContext},
	}}

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "royalty", got["ritual"]["recommendedMode"])
	assert.Equal(t, "completed", got["ritual"]["status"])
}
