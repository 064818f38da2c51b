package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// NtfyProvider publishes notifications to a topic on an ntfy server.
type NtfyProvider struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewNtfy creates an ntfy provider for topic on the server at url. A
// non-empty token is sent as a bearer credential for protected topics.
func NewNtfy(url, topic, token string) *NtfyProvider {
	return &NtfyProvider{
		endpoint: strings.TrimRight(url, "/") + "/" + topic,
		token:    token,
		client:   newClient(),
	}
}

func (n *NtfyProvider) Name() string { return "ntfy" }

func (n *NtfyProvider) Send(ctx context.Context, notif model.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(ntfyBody(notif)))
	if err != nil {
		return fmt.Errorf("ntfy: build request: %w", err)
	}

	req.Header.Set("Title", notif.Title)
	req.Header.Set("Priority", ntfyPriority(notif.Severity))
	req.Header.Set("Tags", strings.Join(ntfyTags(notif), ","))
	if notif.Subject != "" {
		req.Header.Set("X-Subject", notif.Subject)
	}
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	return deliver(n.client, n.Name(), req)
}

// ntfyBody is the message followed by a blank line and the metadata.
func ntfyBody(n model.Notification) string {
	lines := metadataLines(n.Metadata)
	if len(lines) == 0 {
		return n.Message
	}
	return n.Message + "\n\n" + strings.Join(lines, "\n")
}

func ntfyPriority(severity string) string {
	switch severity {
	case SeverityCritical:
		return "urgent"
	case SeverityWarning:
		return "high"
	case SeverityInfo:
		return "low"
	default:
		return "default"
	}
}

// ntfyTags maps severity and notification type to ntfy emoji shortcodes.
// Unknown types pass through as plain tags.
func ntfyTags(n model.Notification) []string {
	var tags []string
	switch n.Severity {
	case SeverityCritical:
		tags = append(tags, "rotating_light")
	case SeverityWarning:
		tags = append(tags, "warning")
	case SeverityInfo:
		tags = append(tags, "information_source")
	}
	switch n.Type {
	case "":
	case TypeTributeMode:
		tags = append(tags, "moneybag")
	case TypeRitualCompleted:
		tags = append(tags, "crystal_ball")
	default:
		tags = append(tags, n.Type)
	}
	return tags
}
