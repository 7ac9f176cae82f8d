package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartserve/driftguard-assistant/internal/adapters/driftguard"
)

// StatusAPI is the slice of the DriftGuard client the drift tools need.
// Satisfied by *driftguard.Client.
type StatusAPI interface {
	GetHealth(ctx context.Context) (*driftguard.Health, error)
	GetStatistics(ctx context.Context) (*driftguard.Statistics, error)
	GetActiveDrift(ctx context.Context) (*driftguard.RecordList, error)
	TriggerAnalysis(ctx context.Context) (*driftguard.AnalysisAck, error)
}

const (
	// maxReportedRecords caps how many drift records one tool reply lists.
	maxReportedRecords = 5
	// maxReportedChanges caps the field-level changes shown per record.
	maxReportedChanges = 3
)

// StatisticsTool reports aggregate drift statistics.
type StatisticsTool struct {
	api StatusAPI
}

func NewStatisticsTool(api StatusAPI) *StatisticsTool {
	return &StatisticsTool{api: api}
}

func (t *StatisticsTool) Name() string { return "get_drift_statistics" }

func (t *StatisticsTool) Description() string {
	return "Get comprehensive drift statistics from DriftGuard: total records, active drift, resolved drift, and percentages."
}

func (t *StatisticsTool) ParameterSchema() map[string]any { return noArgsSchema() }

func (t *StatisticsTool) Call(ctx context.Context, _ map[string]any) (string, error) {
	stats, err := t.api.GetStatistics(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch drift statistics: %w", err)
	}
	return formatStatistics(stats), nil
}

func formatStatistics(stats *driftguard.Statistics) string {
	var b strings.Builder
	b.WriteString("DriftGuard Statistics Summary\n\n")
	b.WriteString("Overview:\n")
	fmt.Fprintf(&b, "- Total Records: %d\n", stats.TotalRecords)
	fmt.Fprintf(&b, "- Active Drift: %d (%.1f%%)\n", stats.ActiveDrift, stats.ActivePercentage)
	fmt.Fprintf(&b, "- Resolved Drift: %d (%.1f%%)\n", stats.ResolvedDrift, stats.ResolvedPercentage)
	fmt.Fprintf(&b, "- No Drift: %d\n\n", stats.NoDrift)
	b.WriteString("Current Status:\n")
	fmt.Fprintf(&b, "- Recent Active Drift: %d\n", stats.RecentActiveDrift)
	fmt.Fprintf(&b, "- Recent Resolutions: %d\n\n", stats.RecentResolutions)
	fmt.Fprintf(&b, "Alert Level: %s", alertLevel(stats.ActivePercentage))
	return b.String()
}

func alertLevel(activePct float64) string {
	switch {
	case activePct > 50:
		return "HIGH"
	case activePct > 20:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// ActiveDriftTool lists the resources that are currently drifted.
type ActiveDriftTool struct {
	api StatusAPI
}

func NewActiveDriftTool(api StatusAPI) *ActiveDriftTool {
	return &ActiveDriftTool{api: api}
}

func (t *ActiveDriftTool) Name() string { return "get_active_drift_details" }

func (t *ActiveDriftTool) Description() string {
	return "Get detailed information about currently active configuration drift: which resources drifted and what changes were detected."
}

func (t *ActiveDriftTool) ParameterSchema() map[string]any { return noArgsSchema() }

func (t *ActiveDriftTool) Call(ctx context.Context, _ map[string]any) (string, error) {
	active, err := t.api.GetActiveDrift(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch active drift records: %w", err)
	}
	return formatActiveDrift(active), nil
}

func formatActiveDrift(list *driftguard.RecordList) string {
	if list.Count == 0 {
		return "No Active Configuration Drift Detected\n\nAll monitored resources are in sync with their desired state in Git."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Configuration Drift Detected (%d resources)\n\n", list.Count)

	records := list.DriftRecords
	if len(records) > maxReportedRecords {
		records = records[:maxReportedRecords]
	}
	for i, record := range records {
		fmt.Fprintf(&b, "%d. %s: %s (Namespace: %s)\n", i+1, record.Kind, record.Name, record.Namespace)
		fmt.Fprintf(&b, "   - Resource ID: %s\n", record.ResourceID)
		fmt.Fprintf(&b, "   - First Detected: %s\n", record.FirstDetected)

		if len(record.DriftDetails) > 0 {
			b.WriteString("   - Changes Detected:\n")
			changes := record.DriftDetails
			if len(changes) > maxReportedChanges {
				changes = changes[:maxReportedChanges]
			}
			for _, change := range changes {
				fmt.Fprintf(&b, "     * %s: %s -> %s (Severity: %s)\n",
					change.Field, change.From, change.To, change.Severity)
			}
		}
		b.WriteString("\n")
	}

	if list.Count > maxReportedRecords {
		fmt.Fprintf(&b, "... and %d more records. Use the DriftGuard API directly for complete details.\n",
			list.Count-maxReportedRecords)
	}
	return b.String()
}

// HealthCheckTool reports whether the DriftGuard service is responsive.
type HealthCheckTool struct {
	api StatusAPI
}

func NewHealthCheckTool(api StatusAPI) *HealthCheckTool {
	return &HealthCheckTool{api: api}
}

func (t *HealthCheckTool) Name() string { return "get_drift_health_check" }

func (t *HealthCheckTool) Description() string {
	return "Check if the DriftGuard service is healthy and responsive."
}

func (t *HealthCheckTool) ParameterSchema() map[string]any { return noArgsSchema() }

func (t *HealthCheckTool) Call(ctx context.Context, _ map[string]any) (string, error) {
	health, err := t.api.GetHealth(ctx)
	if err != nil {
		return "", fmt.Errorf("driftguard service is not responding: %w", err)
	}
	if health.Status == "healthy" {
		return fmt.Sprintf("DriftGuard Service is HEALTHY\n\nStatus: %s\nMessage: %s\nLast Check: %s",
			health.Status, health.Message, health.Time), nil
	}
	return fmt.Sprintf("DriftGuard Service Status: %s\n\nMessage: %s\nLast Check: %s",
		health.Status, health.Message, health.Time), nil
}

// TriggerAnalysisTool starts a manual drift analysis.
type TriggerAnalysisTool struct {
	api StatusAPI
}

func NewTriggerAnalysisTool(api StatusAPI) *TriggerAnalysisTool {
	return &TriggerAnalysisTool{api: api}
}

func (t *TriggerAnalysisTool) Name() string { return "trigger_drift_analysis" }

func (t *TriggerAnalysisTool) Description() string {
	return "Trigger a manual drift analysis that compares current Kubernetes state with the Git repository state."
}

func (t *TriggerAnalysisTool) ParameterSchema() map[string]any { return noArgsSchema() }

func (t *TriggerAnalysisTool) Call(ctx context.Context, _ map[string]any) (string, error) {
	ack, err := t.api.TriggerAnalysis(ctx)
	if err != nil {
		return "", fmt.Errorf("trigger drift analysis: %w", err)
	}
	return fmt.Sprintf("Drift Analysis Triggered\n\nStatus: %s\nMessage: %s\n\n"+
		"The analysis is now running in the background. Check drift statistics in a few moments for updated results.",
		ack.Status, ack.Message), nil
}

// ComprehensiveReportTool combines health, statistics, and active drift into
// one overview. Sub-reports that fail are replaced with their failure text so
// a partially unavailable backend still yields a useful report.
type ComprehensiveReportTool struct {
	health     *HealthCheckTool
	statistics *StatisticsTool
	active     *ActiveDriftTool
}

func NewComprehensiveReportTool(api StatusAPI) *ComprehensiveReportTool {
	return &ComprehensiveReportTool{
		health:     NewHealthCheckTool(api),
		statistics: NewStatisticsTool(api),
		active:     NewActiveDriftTool(api),
	}
}

func (t *ComprehensiveReportTool) Name() string { return "get_comprehensive_drift_report" }

func (t *ComprehensiveReportTool) Description() string {
	return "Get a comprehensive drift report including health, statistics, and active drift details."
}

func (t *ComprehensiveReportTool) ParameterSchema() map[string]any { return noArgsSchema() }

func (t *ComprehensiveReportTool) Call(ctx context.Context, args map[string]any) (string, error) {
	sections := []string{"COMPREHENSIVE DRIFTGUARD REPORT"}
	for _, sub := range []interface {
		Call(ctx context.Context, args map[string]any) (string, error)
	}{t.health, t.statistics, t.active} {
		section, err := sub.Call(ctx, args)
		if err != nil {
			section = fmt.Sprintf("(section unavailable: %v)", err)
		}
		sections = append(sections, section)
	}
	sections = append(sections,
		"Recommendations:\n"+
			"- Monitor active drift regularly\n"+
			"- Investigate high-severity drifts immediately\n"+
			"- Consider triggering manual analysis if needed\n"+
			"- Review resolved drifts to prevent recurrence")
	return strings.Join(sections, "\n\n"), nil
}
