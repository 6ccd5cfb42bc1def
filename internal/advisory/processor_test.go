package advisory

import (
	"context"
	"testing"
	"time"

	"github.com/openpatrimoine/socle/internal/domain"
)

func TestProcessor(t *testing.T) {
	proc := NewProcessor()
	ctx := context.Background()

	t.Run("AllOK", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:  "tenant-001",
			SimID:     "sim-001",
			TraceID:   "trace-001",
			StartTime: time.Now(),
			CheckResults: []domain.CheckResult{
				{CheckID: "check-1", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-2", Score: 0.2, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-3", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
			},
		}

		adv := proc.Process(ctx, input)

		if adv.Status != domain.AdvisoryOK {
			t.Errorf("expected OK, got %s", adv.Status)
		}
		if adv.Score > proc.AttentionThreshold {
			t.Errorf("score %.2f should be below threshold %.2f", adv.Score, proc.AttentionThreshold)
		}
		if adv.TenantID != "tenant-001" {
			t.Errorf("expected tenantID 'tenant-001', got '%s'", adv.TenantID)
		}
		if adv.Metadata.TraceID != "trace-001" {
			t.Errorf("expected traceID 'trace-001', got '%s'", adv.Metadata.TraceID)
		}
	})

	t.Run("AttentionOutcome", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:  "tenant-001",
			SimID:     "sim-002",
			TraceID:   "trace-002",
			StartTime: time.Now(),
			CheckResults: []domain.CheckResult{
				{CheckID: "check-1", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-2", Score: 1.0, Outcome: domain.CheckOutcomeAttention, Weight: 1.0},
				{CheckID: "check-3", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
			},
		}

		adv := proc.Process(ctx, input)

		if adv.Status != domain.AdvisoryAttention {
			t.Errorf("expected ATTENTION for flagged check, got %s", adv.Status)
		}
	})

	t.Run("HighAggregateScore", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:  "tenant-001",
			SimID:     "sim-003",
			TraceID:   "trace-003",
			StartTime: time.Now(),
			CheckResults: []domain.CheckResult{
				{CheckID: "check-1", Score: 0.8, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-2", Score: 0.9, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-3", Score: 0.7, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
			},
		}

		adv := proc.Process(ctx, input)

		// Average is 0.8, which is above 0.7 threshold
		if adv.Status != domain.AdvisoryAttention {
			t.Errorf("expected ATTENTION for high score, got %s", adv.Status)
		}
	})

	t.Run("WeightedScoring", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:  "tenant-001",
			SimID:     "sim-004",
			TraceID:   "trace-004",
			StartTime: time.Now(),
			CheckResults: []domain.CheckResult{
				{CheckID: "check-1", Score: 1.0, Outcome: domain.CheckOutcomeOK, Weight: 1.0}, // High score, low weight
				{CheckID: "check-2", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 5.0}, // Low score, high weight
			},
		}

		adv := proc.Process(ctx, input)

		// Weighted: (1.0*1.0 + 0.1*5.0) / (1.0 + 5.0) = 1.5/6 = 0.25
		if adv.Score > 0.3 {
			t.Errorf("expected weighted score ~0.25, got %.2f", adv.Score)
		}
		if adv.Status != domain.AdvisoryOK {
			t.Errorf("expected OK with weighted scoring, got %s", adv.Status)
		}
	})

	t.Run("EmptyResults", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:     "tenant-001",
			SimID:        "sim-005",
			TraceID:      "trace-005",
			StartTime:    time.Now(),
			CheckResults: []domain.CheckResult{},
		}

		adv := proc.Process(ctx, input)

		if adv.Status != domain.AdvisoryOK {
			t.Errorf("expected OK for empty results, got %s", adv.Status)
		}
		if adv.Score != 0 {
			t.Errorf("expected score 0, got %.2f", adv.Score)
		}
	})

	t.Run("MetadataPopulated", func(t *testing.T) {
		input := &AdvisoryInput{
			TenantID:  "tenant-001",
			SimID:     "sim-006",
			TraceID:   "trace-006",
			StartTime: time.Now(),
			CheckResults: []domain.CheckResult{
				{CheckID: "check-1", Score: 0.1, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
				{CheckID: "check-2", Score: 0.2, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
			},
		}

		adv := proc.Process(ctx, input)

		if adv.Metadata.TraceID != "trace-006" {
			t.Error("missing traceID in metadata")
		}
		if adv.Metadata.ChecksEvaluated != 2 {
			t.Errorf("expected 2 checks evaluated, got %d", adv.Metadata.ChecksEvaluated)
		}
		if adv.Metadata.EngineVersion == "" {
			t.Error("missing engine version")
		}
		if adv.Metadata.TotalMs < 0 {
			t.Error("TotalMs should be non-negative")
		}
	})
}

func TestNeedsAttention(t *testing.T) {
	flagged := &domain.Advisory{Status: domain.AdvisoryAttention}
	clean := &domain.Advisory{Status: domain.AdvisoryOK}

	if !NeedsAttention(flagged) {
		t.Error("expected true for ATTENTION")
	}
	if NeedsAttention(clean) {
		t.Error("expected false for OK")
	}
}

func TestGetReasons(t *testing.T) {
	adv := &domain.Advisory{
		CheckResults: []domain.CheckResult{
			{Outcome: domain.CheckOutcomeOK, Reason: "Dans la norme"},
			{Outcome: domain.CheckOutcomeAttention, Reason: "Couverture deces partielle"},
			{Outcome: domain.CheckOutcomeError, Reason: "evaluation error"},
			{Outcome: domain.CheckOutcomeOK, Reason: "Normal"},
		},
	}

	reasons := GetReasons(adv)

	if len(reasons) != 2 {
		t.Fatalf("expected 2 reasons, got %d", len(reasons))
	}

	if reasons[0] != "Couverture deces partielle" {
		t.Errorf("expected 'Couverture deces partielle', got '%s'", reasons[0])
	}
	if reasons[1] != "evaluation error" {
		t.Errorf("expected 'evaluation error', got '%s'", reasons[1])
	}
}

func TestCustomThreshold(t *testing.T) {
	proc := &Processor{
		AttentionThreshold: 0.5, // Lower threshold
		UseWeightedScoring: true,
	}

	ctx := context.Background()
	input := &AdvisoryInput{
		TenantID:  "tenant-001",
		SimID:     "sim-001",
		TraceID:   "trace-001",
		StartTime: time.Now(),
		CheckResults: []domain.CheckResult{
			{CheckID: "check-1", Score: 0.6, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
		},
	}

	adv := proc.Process(ctx, input)

	// 0.6 > 0.5 threshold, should flag
	if adv.Status != domain.AdvisoryAttention {
		t.Errorf("expected ATTENTION with 0.5 threshold, got %s", adv.Status)
	}
}

func TestUnweightedScoring(t *testing.T) {
	proc := &Processor{
		AttentionThreshold: 0.7,
		UseWeightedScoring: false, // Disable weighted scoring
	}

	ctx := context.Background()
	input := &AdvisoryInput{
		TenantID:  "tenant-001",
		SimID:     "sim-001",
		TraceID:   "trace-001",
		StartTime: time.Now(),
		CheckResults: []domain.CheckResult{
			{CheckID: "check-1", Score: 0.4, Outcome: domain.CheckOutcomeOK, Weight: 10.0}, // Weight ignored
			{CheckID: "check-2", Score: 0.4, Outcome: domain.CheckOutcomeOK, Weight: 1.0},
		},
	}

	adv := proc.Process(ctx, input)

	// Unweighted: (0.4 + 0.4) / 2 = 0.4
	if adv.Score > 0.5 {
		t.Errorf("expected unweighted score ~0.4, got %.2f", adv.Score)
	}
}
