package tools

import (
	"context"
	"fmt"
	"time"
)

// Notifier delivers a formatted message to the configured chat webhook.
// Satisfied by *slack.Notifier. A missing webhook surfaces as
// domain.ErrNotConfigured from Send, which the executor records as an
// ordinary tool failure.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// SlackReportTool forwards a free-form drift report to Slack.
type SlackReportTool struct {
	notifier Notifier
}

func NewSlackReportTool(notifier Notifier) *SlackReportTool {
	return &SlackReportTool{notifier: notifier}
}

func (t *SlackReportTool) Name() string { return "send_drift_report_to_slack" }

func (t *SlackReportTool) Description() string {
	return "Send a DriftGuard analysis report to the team's Slack channel. Requires the Slack webhook to be configured."
}

func (t *SlackReportTool) ParameterSchema() map[string]any {
	return objectSchema([]string{"message"}, map[string]string{
		"message": "The report content to post to Slack.",
	})
}

func (t *SlackReportTool) Call(ctx context.Context, args map[string]any) (string, error) {
	message := getString(args, "message")
	if message == "" {
		return "", fmt.Errorf("send_drift_report_to_slack: message is required")
	}
	if err := t.notifier.Send(ctx, message); err != nil {
		return "", fmt.Errorf("send drift report to Slack: %w", err)
	}
	return "DriftGuard report successfully sent to Slack.", nil
}

// SlackAlertTool posts a structured alert about one drifted resource.
type SlackAlertTool struct {
	notifier Notifier
	now      func() time.Time
}

func NewSlackAlertTool(notifier Notifier) *SlackAlertTool {
	return &SlackAlertTool{notifier: notifier, now: time.Now}
}

func (t *SlackAlertTool) Name() string { return "send_drift_alert_to_slack" }

func (t *SlackAlertTool) Description() string {
	return "Send a specific drift alert to Slack with structured information about the affected resource."
}

func (t *SlackAlertTool) ParameterSchema() map[string]any {
	return objectSchema(
		[]string{"alert_type", "resource_name", "namespace", "details"},
		map[string]string{
			"alert_type":    "Type of drift detected, e.g. \"Configuration Drift\".",
			"resource_name": "Name of the affected resource.",
			"namespace":     "Kubernetes namespace of the resource.",
			"details":       "Detailed information about the drift.",
		},
	)
}

func (t *SlackAlertTool) Call(ctx context.Context, args map[string]any) (string, error) {
	alertType := getString(args, "alert_type")
	resourceName := getString(args, "resource_name")
	namespace := getString(args, "namespace")
	details := getString(args, "details")

	message := fmt.Sprintf(
		"DriftGuard Alert: %s\n\n"+
			"Resource: %s\n"+
			"Namespace: %s\n"+
			"Timestamp: %s\n\n"+
			"Details:\n%s\n\n"+
			"Action Required: Please investigate and resolve this configuration drift.",
		alertType, resourceName, namespace,
		t.now().Format("2006-01-02 15:04:05"), details,
	)

	if err := t.notifier.Send(ctx, message); err != nil {
		return "", fmt.Errorf("send drift alert for %s to Slack: %w", resourceName, err)
	}
	return fmt.Sprintf("Drift alert for %s sent to Slack successfully.", resourceName), nil
}

// SlackSummaryTool posts a comprehensive drift summary.
type SlackSummaryTool struct {
	notifier Notifier
	now      func() time.Time
}

func NewSlackSummaryTool(notifier Notifier) *SlackSummaryTool {
	return &SlackSummaryTool{notifier: notifier, now: time.Now}
}

func (t *SlackSummaryTool) Name() string { return "send_drift_summary_to_slack" }

func (t *SlackSummaryTool) Description() string {
	return "Send a comprehensive drift summary report to Slack."
}

func (t *SlackSummaryTool) ParameterSchema() map[string]any {
	return objectSchema([]string{"summary_data"}, map[string]string{
		"summary_data": "Formatted summary of drift statistics and status.",
	})
}

func (t *SlackSummaryTool) Call(ctx context.Context, args map[string]any) (string, error) {
	summary := getString(args, "summary_data")
	if summary == "" {
		return "", fmt.Errorf("send_drift_summary_to_slack: summary_data is required")
	}

	message := fmt.Sprintf(
		"DriftGuard Summary Report\n\n%s\n\nGenerated: %s",
		summary, t.now().Format("2006-01-02 15:04:05"),
	)

	if err := t.notifier.Send(ctx, message); err != nil {
		return "", fmt.Errorf("send drift summary to Slack: %w", err)
	}
	return "Drift summary sent to Slack successfully.", nil
}
