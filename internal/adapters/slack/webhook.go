package slack

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

const (
	// maxMessageLen bounds a message to what a Slack text block accepts.
	maxMessageLen = 2800

	truncationMarker = "\n...\n[Report truncated - see full details in logs]"
)

// Notifier posts formatted reports to a Slack incoming webhook. A missing
// webhook URL is reported as domain.ErrNotConfigured so callers can tell a
// configuration gap apart from a delivery failure.
type Notifier struct {
	http       *resty.Client
	webhookURL string
}

func NewNotifier(webhookURL string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		http:       resty.New().SetTimeout(timeout),
		webhookURL: webhookURL,
	}
}

// Configured reports whether a webhook URL is set.
func (n *Notifier) Configured() bool { return n.webhookURL != "" }

type payload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type   string `json:"type"`
	Text   *text  `json:"text,omitempty"`
	Fields []text `json:"fields,omitempty"`
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send delivers a drift report to the configured webhook.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.webhookURL == "" {
		return fmt.Errorf("slack webhook URL: %w", domain.ErrNotConfigured)
	}

	body := payload{
		Text: "DriftGuard Report",
		Blocks: []block{
			{
				Type: "header",
				Text: &text{Type: "plain_text", Text: "DriftGuard Report"},
			},
			{
				Type: "section",
				Fields: []text{
					{Type: "mrkdwn", Text: "*Timestamp:* " + time.Now().Format("2006-01-02 15:04:05")},
					{Type: "mrkdwn", Text: "*Source:* DriftGuard Assistant"},
				},
			},
			{
				Type: "section",
				Text: &text{Type: "mrkdwn", Text: "```\n" + Truncate(message) + "\n```"},
			},
		},
	}

	resp, err := n.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("slack delivery: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("slack delivery: status %d", resp.StatusCode())
	}
	return nil
}

// Truncate bounds a message to Slack's text-block limit, marking the cut.
// The cut backs up to a rune boundary so multibyte text stays valid UTF-8.
func Truncate(message string) string {
	if len(message) <= maxMessageLen {
		return message
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut] + truncationMarker
}
