// Package advisory aggregates check results into a single advisory
// opinion on a credit simulation.
package advisory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openpatrimoine/socle/internal/domain"
)

// Processor aggregates check results and produces a final advisory.
type Processor struct {
	// Threshold above which a simulation is flagged ATTENTION
	AttentionThreshold float64

	// Weight configuration for check aggregation
	UseWeightedScoring bool
}

// NewProcessor creates a new advisory processor with default settings.
func NewProcessor() *Processor {
	return &Processor{
		AttentionThreshold: 0.7,
		UseWeightedScoring: true,
	}
}

// AdvisoryInput contains all data needed for an advisory.
type AdvisoryInput struct {
	TenantID     string
	SimID        string
	TraceID      string
	CheckResults []domain.CheckResult
	StartTime    time.Time
}

// Process evaluates check results and produces a final advisory.
func (p *Processor) Process(ctx context.Context, input *AdvisoryInput) *domain.Advisory {
	start := time.Now()

	adv := &domain.Advisory{
		ID:           uuid.New().String(),
		TenantID:     input.TenantID,
		SimID:        input.SimID,
		Timestamp:    time.Now().UTC(),
		CheckResults: input.CheckResults,
	}

	agg := p.aggregate(input.CheckResults)

	if agg.HasAttention || agg.AggregateScore >= p.AttentionThreshold {
		adv.Status = domain.AdvisoryAttention
	} else {
		adv.Status = domain.AdvisoryOK
	}
	adv.Score = agg.AggregateScore

	checksMs := time.Since(start).Milliseconds()
	totalMs := time.Since(input.StartTime).Milliseconds()

	adv.Metadata = domain.AdvisoryMetadata{
		TraceID:         input.TraceID,
		ChecksEvaluated: len(input.CheckResults),
		ChecksMs:        checksMs,
		TotalMs:         totalMs,
		EngineVersion:   "socle-1.0",
	}

	return adv
}

// AggregateResult holds the aggregated scoring results.
type AggregateResult struct {
	AggregateScore  float64
	TotalWeight     float64
	ChecksTriggered int
	HasAttention    bool
}

// aggregate computes the weighted aggregate score from check results.
func (p *Processor) aggregate(results []domain.CheckResult) *AggregateResult {
	if len(results) == 0 {
		return &AggregateResult{}
	}

	agg := &AggregateResult{}

	for _, r := range results {
		weight := r.Weight
		if weight <= 0 {
			weight = 1.0
		}

		// Any check that lands on attention forces the advisory status
		if r.Outcome == domain.CheckOutcomeAttention {
			agg.HasAttention = true
			agg.ChecksTriggered++
		}

		if p.UseWeightedScoring {
			agg.AggregateScore += r.Score * weight
			agg.TotalWeight += weight
		} else {
			agg.AggregateScore += r.Score
			agg.TotalWeight += 1.0
		}
	}

	// Normalize score
	if agg.TotalWeight > 0 {
		agg.AggregateScore = agg.AggregateScore / agg.TotalWeight
	}

	return agg
}

// NeedsAttention returns true if the advisory flags the simulation.
func NeedsAttention(adv *domain.Advisory) bool {
	return adv.Status == domain.AdvisoryAttention
}

// GetReasons extracts human-readable reasons from an advisory.
func GetReasons(adv *domain.Advisory) []string {
	var reasons []string
	for _, r := range adv.CheckResults {
		if r.Outcome == domain.CheckOutcomeAttention || r.Outcome == domain.CheckOutcomeError {
			if r.Reason != "" {
				reasons = append(reasons, r.Reason)
			}
		}
	}
	return reasons
}
