package driftguard

// Wire types for the DriftGuard REST API.

// Health is the /health response.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// Statistics summarizes drift records across the cluster.
type Statistics struct {
	TotalRecords       int     `json:"total_records"`
	ActiveDrift        int     `json:"active_drift"`
	ResolvedDrift      int     `json:"resolved_drift"`
	NoDrift            int     `json:"no_drift"`
	ActivePercentage   float64 `json:"active_percentage"`
	ResolvedPercentage float64 `json:"resolved_percentage"`
	RecentActiveDrift  int     `json:"recent_active_drift"`
	RecentResolutions  int     `json:"recent_resolutions"`
}

// StatisticsEnvelope is the /api/v1/statistics response.
type StatisticsEnvelope struct {
	Statistics Statistics `json:"statistics"`
}

// DriftChange is one field-level divergence inside a drift record.
type DriftChange struct {
	Field    string `json:"field"`
	From     string `json:"from"`
	To       string `json:"to"`
	Severity string `json:"severity"`
}

// DriftRecord describes one resource that diverged from its desired state.
type DriftRecord struct {
	ResourceID    string        `json:"resource_id"`
	Kind          string        `json:"kind"`
	Namespace     string        `json:"namespace"`
	Name          string        `json:"name"`
	FirstDetected string        `json:"first_detected"`
	DriftDetails  []DriftChange `json:"drift_details"`
}

// RecordList is the shape of the drift-record listing endpoints.
type RecordList struct {
	Count        int           `json:"count"`
	DriftRecords []DriftRecord `json:"drift_records"`
}

// AnalysisAck is the response to a manual analysis trigger.
type AnalysisAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
