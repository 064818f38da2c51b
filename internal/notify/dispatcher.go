package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// DefaultCooldown suppresses repeats of the same notification type and
// subject, so flipping the tribute mode back and forth does not page anyone
// on every click.
const DefaultCooldown = 1 * time.Minute

// Dispatcher fans a notification out to every configured provider.
// Provider failures are logged and never returned to the caller.
type Dispatcher struct {
	providers []Provider
	cooldown  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	lastFired map[string]time.Time
}

// NewDispatcher creates a dispatcher over providers. A zero cooldown sends
// every notification.
func NewDispatcher(providers []Provider, cooldown time.Duration) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		cooldown:  cooldown,
		now:       time.Now,
		lastFired: make(map[string]time.Time),
	}
}

// Providers returns the configured provider names.
func (d *Dispatcher) Providers() []string {
	names := make([]string, len(d.providers))
	for i, p := range d.providers {
		names[i] = p.Name()
	}
	return names
}

// Notify sends n to all providers unless an identical type and subject was
// sent within the cooldown. It reports whether the notification was sent.
func (d *Dispatcher) Notify(ctx context.Context, n model.Notification) bool {
	if len(d.providers) == 0 {
		return false
	}

	now := d.now()
	if n.Timestamp.IsZero() {
		n.Timestamp = now
	}

	key := n.Type + "/" + n.Subject
	d.mu.Lock()
	if last, ok := d.lastFired[key]; ok && d.cooldown > 0 && now.Sub(last) < d.cooldown {
		d.mu.Unlock()
		slog.Debug("notification suppressed", "type", n.Type, "subject", n.Subject)
		return false
	}
	d.lastFired[key] = now
	d.mu.Unlock()

	for _, p := range d.providers {
		if err := p.Send(ctx, n); err != nil {
			slog.Error("sending notification", "provider", p.Name(), "type", n.Type, "error", err)
		}
	}

	slog.Info("notification sent",
		"type", n.Type,
		"severity", n.Severity,
		"subject", n.Subject,
		"title", n.Title,
	)
	return true
}
