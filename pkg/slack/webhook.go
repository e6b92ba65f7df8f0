package slack

import (
	"context"
	"fmt"
	"time"

	"bondwatch/config"
	"bondwatch/internal/bonds/volume"

	"github.com/go-resty/resty/v2"
)

// Message is the incoming-webhook payload.
type Message struct {
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Color  string  `json:"color"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Footer string  `json:"footer,omitempty"`
	Ts     int64   `json:"ts,omitempty"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

const (
	colorPositive = "#36a64f"
	colorNegative = "#ff0000"
)

// Notifier delivers volume reports to a Slack incoming webhook.
// Delivery is best effort: a failure is returned for the caller to
// log, never retried here.
type Notifier struct {
	http       *resty.Client
	webhookURL string
}

func NewNotifier(cfg config.SlackConfig) *Notifier {
	return &Notifier{
		http:       resty.New().SetTimeout(cfg.Timeout),
		webhookURL: cfg.WebhookURL,
	}
}

// SendVolumeReport renders a report into an attachment and posts it.
func (n *Notifier) SendVolumeReport(ctx context.Context, title string, report volume.Report) error {
	color := colorPositive
	if report.NetChange < 0 {
		color = colorNegative
	}

	intervals := 0
	for _, iv := range report.Intervals {
		if !iv.Missing {
			intervals++
		}
	}

	msg := Message{
		Attachments: []Attachment{{
			Color: color,
			Title: fmt.Sprintf(":bell: %s", title),
			Fields: []Field{
				{
					Title: "Time Period",
					Value: fmt.Sprintf("%s\n-> %s",
						report.Start.Format("2006-01-02 03:04 PM"),
						report.End.Format("2006-01-02 03:04 PM")),
				},
				{
					Title: "Raw Volume (Unit Changes)",
					Value: fmt.Sprintf("%.2f", report.RawChange),
					Short: true,
				},
				{
					Title: "Adjusted Volume (w/ Face Value)",
					Value: fmt.Sprintf("Rs. %.2f", report.NetChange),
					Short: true,
				},
				{
					Title: "Data Points",
					Value: fmt.Sprintf("%d intervals, %d bonds", intervals, report.Entities),
				},
			},
			Footer: "Stablebonds Monitor",
			Ts:     time.Now().Unix(),
		}},
	}

	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("slack webhook status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
