// Package worker provides async simulation processing for the Pro tier.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openpatrimoine/socle/internal/advisory"
	"github.com/openpatrimoine/socle/internal/check"
	"github.com/openpatrimoine/socle/internal/credit"
	"github.com/openpatrimoine/socle/internal/domain"
)

// Worker processes credit simulations asynchronously from the EventBus.
type Worker struct {
	bus        domain.EventBus
	repo       domain.Repository
	engine     *check.Engine
	processor  *advisory.Processor
	fiscalYear int

	subscriptions []domain.Subscription
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
}

// Config holds worker configuration.
type Config struct {
	// TenantIDs is the list of tenants to process (empty = all via wildcard if supported)
	TenantIDs []string

	// WorkerCount is the number of concurrent workers per tenant
	WorkerCount int
}

// NewWorker creates a new async worker.
func NewWorker(bus domain.EventBus, repo domain.Repository, engine *check.Engine, processor *advisory.Processor, fiscalYear int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		bus:        bus,
		repo:       repo,
		engine:     engine,
		processor:  processor,
		fiscalYear: fiscalYear,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins processing messages for the given tenants.
func (w *Worker) Start(cfg Config) error {
	if len(cfg.TenantIDs) == 0 {
		return w.startGlobalWorker()
	}

	for _, tenantID := range cfg.TenantIDs {
		if err := w.startTenantWorker(tenantID); err != nil {
			slog.Error("failed to start worker for tenant",
				"tenant_id", tenantID,
				"error", err,
			)
			continue
		}
	}

	slog.Info("workers started",
		"tenant_count", len(cfg.TenantIDs),
	)

	return nil
}

// startGlobalWorker starts a worker that processes all tenants (for testing/dev).
func (w *Worker) startGlobalWorker() error {
	// Subscribe using a special "global" tenant ID
	// In production, you'd want to subscribe with wildcards or JetStream
	sub, err := w.bus.Subscribe(w.ctx, "_global", domain.TopicSimulationRequested, w.handleMessage)
	if err != nil {
		return err
	}
	w.subscriptions = append(w.subscriptions, sub)

	slog.Info("global worker started")
	return nil
}

// startTenantWorker starts workers for a specific tenant.
func (w *Worker) startTenantWorker(tenantID string) error {
	sub, err := w.bus.Subscribe(w.ctx, tenantID, domain.TopicSimulationRequested, func(ctx context.Context, msg *domain.Message) error {
		return w.processSimulation(ctx, tenantID, msg)
	})
	if err != nil {
		return err
	}
	w.subscriptions = append(w.subscriptions, sub)

	slog.Info("tenant worker started",
		"tenant_id", tenantID,
		"topic", domain.TopicSimulationRequested,
	)

	return nil
}

// handleMessage handles messages from global subscription.
func (w *Worker) handleMessage(ctx context.Context, msg *domain.Message) error {
	return w.processSimulation(ctx, msg.TenantID, msg)
}

// SimulationMessage is the message payload for simulation processing.
type SimulationMessage struct {
	SimID    string        `json:"simId,omitempty"`
	TenantID string        `json:"tenantId"`
	TraceID  string        `json:"traceId,omitempty"`
	Loans    []domain.Loan `json:"loans"`
}

// processSimulation runs a simulation through the full pipeline.
func (w *Worker) processSimulation(ctx context.Context, tenantID string, msg *domain.Message) error {
	start := time.Now()

	// Parse message
	var simMsg SimulationMessage
	if err := json.Unmarshal(msg.Payload, &simMsg); err != nil {
		slog.Error("failed to parse simulation message",
			"message_id", msg.ID,
			"error", err,
		)
		return err
	}

	// Use message tenant if provided
	if simMsg.TenantID != "" {
		tenantID = simMsg.TenantID
	}

	traceID := simMsg.TraceID
	if traceID == "" {
		traceID = msg.ID
	}

	simID := simMsg.SimID
	if simID == "" {
		simID = uuid.New().String()
	}

	slog.Debug("processing simulation",
		"sim_id", simID,
		"tenant_id", tenantID,
		"trace_id", traceID,
	)

	// 1. Build schedules
	perLoan, global := credit.Simulate(simMsg.Loans)
	summary := credit.Summarize(simMsg.Loans, global)

	// 2. Evaluate checks
	var checkResults []domain.CheckResult
	if w.engine != nil {
		evalInput := &check.EvaluateInput{
			TenantID:            tenantID,
			SimID:               simID,
			DureeMois:           summary.DureeMois,
			NbPrets:             summary.NbPrets,
			CapitalEmprunte:     summary.CapitalEmprunte,
			CapitalDecesInitial: summary.CapitalDecesInitial,
			MensualiteTotale:    summary.MensualiteTotale,
			CoutAssurance:       summary.CoutAssurance,
			FiscalYear:          w.fiscalYear,
		}

		results, err := w.engine.EvaluateAll(ctx, evalInput)
		if err != nil {
			slog.Error("check evaluation failed",
				"sim_id", simID,
				"error", err,
			)
			return err
		}
		checkResults = results
	}

	// 3. Aggregate into an advisory
	adv := w.processor.Process(ctx, &advisory.AdvisoryInput{
		TenantID:     tenantID,
		SimID:        simID,
		TraceID:      traceID,
		CheckResults: checkResults,
		StartTime:    start,
	})

	sim := &domain.CreditSimulation{
		ID:           simID,
		TenantID:     tenantID,
		Loans:        simMsg.Loans,
		Global:       global,
		PerLoan:      perLoan,
		CheckResults: checkResults,
		Advisory:     adv,
		CreatedAt:    time.Now().UTC(),
	}

	// 4. Save simulation
	if w.repo != nil {
		if err := w.repo.SaveSimulation(ctx, tenantID, sim); err != nil {
			slog.Error("failed to save simulation",
				"sim_id", simID,
				"error", err,
			)
		}
	}

	// 5. Publish result to completed topic
	resultPayload, _ := json.Marshal(sim)
	if err := w.bus.Publish(ctx, tenantID, domain.TopicSimulationCompleted, resultPayload); err != nil {
		slog.Error("failed to publish simulation result",
			"sim_id", simID,
			"error", err,
		)
	}

	// 6. If the advisory flags the simulation, publish to the alert topic
	if advisory.NeedsAttention(adv) {
		if err := w.bus.Publish(ctx, tenantID, domain.TopicAdvisoryAlert, resultPayload); err != nil {
			slog.Error("failed to publish advisory alert",
				"sim_id", simID,
				"error", err,
			)
		}
	}

	slog.Info("simulation processed",
		"sim_id", simID,
		"tenant_id", tenantID,
		"status", adv.Status,
		"score", adv.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// Stop gracefully stops all workers.
func (w *Worker) Stop() error {
	w.cancel()

	// Unsubscribe all
	for _, sub := range w.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			slog.Error("failed to unsubscribe",
				"topic", sub.Topic(),
				"error", err,
			)
		}
	}
	w.subscriptions = nil

	w.wg.Wait()

	slog.Info("workers stopped")
	return nil
}

// Stats returns worker statistics.
type Stats struct {
	SubscriptionCount int      `json:"subscriptionCount"`
	Topics            []string `json:"topics"`
}

// GetStats returns current worker statistics.
func (w *Worker) GetStats() Stats {
	topics := make([]string, len(w.subscriptions))
	for i, sub := range w.subscriptions {
		topics[i] = sub.Topic()
	}
	return Stats{
		SubscriptionCount: len(w.subscriptions),
		Topics:            topics,
	}
}
