package domain

import "time"

// Advisory is the aggregated outcome of all checks run on a simulation.
type Advisory struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	SimID     string    `json:"simId"`
	Status    string    `json:"status"` // "OK" or "ATTENTION"
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`

	CheckResults []CheckResult `json:"checkResults"`

	Metadata AdvisoryMetadata `json:"metadata"`
}

// AdvisoryMetadata contains processing information.
type AdvisoryMetadata struct {
	TraceID         string `json:"traceId"`
	ChecksMs        int64  `json:"checksMs"`
	TotalMs         int64  `json:"totalMs"`
	ChecksEvaluated int    `json:"checksEvaluated"`
	EngineVersion   string `json:"engineVersion"`
}

// Advisory statuses
const (
	AdvisoryOK        = "OK"
	AdvisoryAttention = "ATTENTION"
)
