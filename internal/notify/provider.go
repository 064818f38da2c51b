// Package notify delivers human-facing notifications about tribute and
// ritual changes to external channels.
package notify

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// Severity values carried by model.Notification.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Notification types raised by the API.
const (
	TypeTributeMode     = "tribute_mode"
	TypeRitualCompleted = "ritual_completed"
)

const sendTimeout = 10 * time.Second

// Provider sends notifications through a specific channel.
type Provider interface {
	Name() string
	Send(ctx context.Context, n model.Notification) error
}

func newClient() *http.Client {
	return &http.Client{Timeout: sendTimeout}
}

// deliver performs req on behalf of provider name. Any non-2xx status is an
// error.
func deliver(client *http.Client, name string, req *http.Request) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send: %w", name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", name, resp.StatusCode)
	}
	return nil
}

// metadataLines renders metadata as "key: value" lines in key order.
func metadataLines(md map[string]string) []string {
	lines := make([]string, 0, len(md))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		lines = append(lines, k+": "+md[k])
	}
	return lines
}
