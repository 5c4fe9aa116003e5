package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
)

type webhookPayload struct {
	Channel string `json:"channel"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// WebhookNotifier posts notifications as JSON to a webhook endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

type WebhookOption func(*WebhookNotifier)

func WithHTTPClient(client *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		if client != nil {
			n.client = client
		}
	}
}

func NewWebhookNotifier(url string, opts ...WebhookOption) (*WebhookNotifier, error) {
	if url == "" {
		return nil, errors.New("webhook notifier: empty url")
	}
	n := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Notify posts in a background goroutine so stream and timer handlers never
// block on delivery. Failures are logged, not returned.
func (n *WebhookNotifier) Notify(channel string, title string, body string) {
	go func() {
		if err := n.send(channel, title, body); err != nil {
			logger := common.GetLoggerWith(common.LoggerNameNotify)
			logger.Error("Webhook delivery failed", zap.String("channel", channel), zap.Error(err))
		}
	}()
}

func (n *WebhookNotifier) send(channel string, title string, body string) error {
	payload, err := json.Marshal(webhookPayload{Channel: channel, Title: title, Body: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook notifier: non-2xx response %d", resp.StatusCode)
	}
	return nil
}
