package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bongona/FlowLandSteward/internal/model"
)

const webhookSource = "flowland-steward"

// WebhookProvider posts notifications as JSON to an HTTP endpoint.
type WebhookProvider struct {
	url     string
	method  string
	headers map[string]string
	client  *http.Client
}

// webhookPayload carries a pre-rendered text line for chat services with
// incoming webhooks (Slack, Mattermost) and the full notification under
// "event" for everything else.
type webhookPayload struct {
	Text   string             `json:"text"`
	Source string             `json:"source"`
	Event  model.Notification `json:"event"`
}

// NewWebhook creates a webhook provider. An empty method means POST.
func NewWebhook(url, method string, headers map[string]string) *WebhookProvider {
	if method == "" {
		method = http.MethodPost
	}
	return &WebhookProvider{
		url:     url,
		method:  strings.ToUpper(method),
		headers: headers,
		client:  newClient(),
	}
}

func (w *WebhookProvider) Name() string { return "webhook" }

func (w *WebhookProvider) Send(ctx context.Context, n model.Notification) error {
	body, err := json.Marshal(webhookPayload{
		Text:   webhookText(n),
		Source: webhookSource,
		Event:  n,
	})
	if err != nil {
		return fmt.Errorf("webhook: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, w.method, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	return deliver(w.client, w.Name(), req)
}

func webhookText(n model.Notification) string {
	text := fmt.Sprintf("*%s*: %s", n.Title, n.Message)
	if lines := metadataLines(n.Metadata); len(lines) > 0 {
		text += " (" + strings.Join(lines, ", ") + ")"
	}
	return text
}
