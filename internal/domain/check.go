package domain

// CheckConfig defines a configurable simulation check.
type CheckConfig struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`

	// CEL expression evaluated against the simulation summary
	Expression string `json:"expression"`

	// Outcome bands for score-to-outcome mapping
	Bands []CheckBand `json:"bands"`

	// Check weight in the advisory aggregation
	Weight float64 `json:"weight"`

	// Whether check is active
	Enabled bool `json:"enabled"`
}

// CheckBand maps a score range to an outcome.
type CheckBand struct {
	LowerLimit *float64 `json:"lowerLimit,omitempty"`
	UpperLimit *float64 `json:"upperLimit,omitempty"`
	Outcome    string   `json:"outcome"` // e.g., ".ok", ".attention"
	Reason     string   `json:"reason"`
}

// CheckResult is the output of a check evaluation.
type CheckResult struct {
	CheckID   string  `json:"checkId"`
	TenantID  string  `json:"tenantId"`
	SimID     string  `json:"simId"`
	Outcome   string  `json:"outcome"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
	Weight    float64 `json:"weight"`
	ProcessMs int64   `json:"processMs"`
}

// Predefined check outcomes
const (
	CheckOutcomeOK        = ".ok"
	CheckOutcomeAttention = ".attention"
	CheckOutcomeError     = ".err"
)
