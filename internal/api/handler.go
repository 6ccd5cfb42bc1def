package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openpatrimoine/socle/internal/advisory"
	"github.com/openpatrimoine/socle/internal/check"
	"github.com/openpatrimoine/socle/internal/credit"
	"github.com/openpatrimoine/socle/internal/domain"
	"github.com/openpatrimoine/socle/internal/impot"
	"github.com/openpatrimoine/socle/internal/profile"
	"github.com/openpatrimoine/socle/internal/repository"
	"github.com/openpatrimoine/socle/internal/rules"
	"github.com/openpatrimoine/socle/internal/settings"
)

// profileCacheTTL bounds how long a memoized fiscal profile is served
// before the resolution runs again.
const profileCacheTTL = 10 * time.Minute

// GlobalTenantID is used for check configs that apply to all tenants.
const GlobalTenantID = "*"

// Deps bundles the collaborators of the API handlers.
type Deps struct {
	Repo       domain.Repository
	Cache      domain.Cache
	Bus        domain.EventBus
	Engine     *check.Engine
	Processor  *advisory.Processor
	Profiles   *profile.Service
	Resolver   *rules.Resolver
	Settings   *settings.Service
	FiscalYear int
}

// Handler holds dependencies for API handlers.
type Handler struct {
	repo       domain.Repository
	cache      domain.Cache
	bus        domain.EventBus
	engine     *check.Engine
	processor  *advisory.Processor
	profiles   *profile.Service
	resolver   *rules.Resolver
	settings   *settings.Service
	fiscalYear int
	version    string
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps, version string) *Handler {
	return &Handler{
		repo:       deps.Repo,
		cache:      deps.Cache,
		bus:        deps.Bus,
		engine:     deps.Engine,
		processor:  deps.Processor,
		profiles:   deps.Profiles,
		resolver:   deps.Resolver,
		settings:   deps.Settings,
		fiscalYear: deps.FiscalYear,
		version:    version,
	}
}

// Health returns server health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	// Check repository health
	if h.repo != nil {
		if err := h.repo.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	// Check cache health
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

// ============================================================================
// FISCAL PROFILES
// ============================================================================

// GetProfile resolves a fiscal profile for an envelope code.
// Query parameters: audience (pp|pm, default pp), per (bancaire|assurance).
// The resolution is memoized in the cache under its input tuple.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	envelope := domain.EnvelopeCode(chi.URLParam(r, "envelope"))
	if envelope == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "envelope code is required",
		})
		return
	}

	audience := domain.Audience(r.URL.Query().Get("audience"))
	if audience == "" {
		audience = domain.AudiencePP
	}
	if audience != domain.AudiencePP && audience != domain.AudiencePM {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "audience must be 'pp' or 'pm'",
		})
		return
	}

	perBancaire := r.URL.Query().Get("per") == "bancaire"

	if h.profiles == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "profile service not available",
		})
		return
	}

	key := domain.ProfileCacheKey(envelope, audience, perBancaire)

	if h.cache != nil {
		cached, err := h.cache.GetProfile(ctx, tenantID, key)
		if err != nil {
			slog.Warn("profile cache lookup failed", "key", key, "error", err)
		}
		if cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	prof := h.profiles.ResolveEnvelope(envelope, audience, perBancaire)

	if h.cache != nil {
		if err := h.cache.SetProfile(ctx, tenantID, key, &prof, profileCacheTTL); err != nil {
			slog.Warn("profile cache store failed", "key", key, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, prof)
}

// ============================================================================
// PRODUCT RULES
// ============================================================================

// ProductRulesResponse is the response for GET /products/{id}/rules.
type ProductRulesResponse struct {
	ProductID string              `json:"productId"`
	Audience  domain.Audience     `json:"audience"`
	HasSocle  bool                `json:"hasSocle"`
	Rules     domain.ProductRules `json:"rules"`
}

// GetProductRules resolves the fiscal rules for a catalog product.
// Resolution is total: unknown products get the placeholder rules with
// HasSocle false, never a 404.
func (h *Handler) GetProductRules(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "product id is required",
		})
		return
	}

	audience := domain.Audience(r.URL.Query().Get("audience"))
	if audience == "" {
		audience = domain.AudiencePP
	}
	if audience != domain.AudiencePP && audience != domain.AudiencePM {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "audience must be 'pp' or 'pm'",
		})
		return
	}

	if h.resolver == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "rule resolver not available",
		})
		return
	}

	writeJSON(w, http.StatusOK, ProductRulesResponse{
		ProductID: productID,
		Audience:  audience,
		HasSocle:  h.resolver.HasSocleRules(productID),
		Rules:     h.resolver.GetRules(productID, audience),
	})
}

// ============================================================================
// CREDIT SIMULATIONS
// ============================================================================

// SimulationRequest is the request body for POST /simulations.
type SimulationRequest struct {
	SimID string        `json:"simId,omitempty"`
	Loans []domain.Loan `json:"loans"`

	// Async enqueues the simulation on the event bus instead of running
	// it inline. Requires a configured bus.
	Async bool `json:"async,omitempty"`
}

// SummaryInfo is the aggregate view of a simulation.
type SummaryInfo struct {
	DureeMois           int     `json:"dureeMois"`
	NbPrets             int     `json:"nbPrets"`
	CapitalEmprunte     float64 `json:"capitalEmprunte"`
	CapitalDecesInitial float64 `json:"capitalDecesInitial"`
	MensualiteTotale    float64 `json:"mensualiteTotale"`
	CoutAssurance       float64 `json:"coutAssurance"`
}

// SimulationResponse is the response for POST /simulations.
type SimulationResponse struct {
	SimID        string                 `json:"simId"`
	Status       string                 `json:"status"`
	Score        float64                `json:"score"`
	Reasons      []string               `json:"reasons,omitempty"`
	Summary      SummaryInfo            `json:"summary"`
	Global       []domain.ScheduleRow   `json:"global"`
	PerLoan      [][]domain.ScheduleRow `json:"perLoan,omitempty"`
	CheckResults []domain.CheckResult   `json:"checkResults,omitempty"`
	Metadata     struct {
		TraceID string `json:"traceId"`
		TotalMs int64  `json:"totalMs"`
		Version string `json:"version"`
	} `json:"metadata"`
}

// CreateSimulation handles POST /simulations requests.
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	tenantID := GetTenantID(ctx)
	traceID := GetTraceID(ctx)

	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if len(req.Loans) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "at least one loan is required",
		})
		return
	}
	for i, loan := range req.Loans {
		if loan.Capital <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "loans[" + strconv.Itoa(i) + "].capital must be positive",
			})
			return
		}
		if loan.DureeMois <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "loans[" + strconv.Itoa(i) + "].dureeMois must be positive",
			})
			return
		}
	}

	simID := req.SimID
	if simID == "" {
		simID = uuid.New().String()
	}

	// Async mode: enqueue for the worker pipeline and return immediately.
	if req.Async {
		if h.bus == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "event bus not available",
			})
			return
		}

		payload, _ := json.Marshal(struct {
			SimID    string        `json:"simId"`
			TenantID string        `json:"tenantId"`
			TraceID  string        `json:"traceId"`
			Loans    []domain.Loan `json:"loans"`
		}{simID, tenantID, traceID, req.Loans})

		if err := h.bus.Publish(ctx, tenantID, domain.TopicSimulationRequested, payload); err != nil {
			slog.Error("failed to enqueue simulation", "sim_id", simID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to enqueue simulation",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"simId":  simID,
			"status": "queued",
		})
		return
	}

	// 1. Build schedules
	perLoan, global := credit.Simulate(req.Loans)
	summary := credit.Summarize(req.Loans, global)

	// 2. Evaluate checks
	var checkResults []domain.CheckResult
	if h.engine != nil {
		results, err := h.engine.EvaluateAll(ctx, &check.EvaluateInput{
			TenantID:            tenantID,
			SimID:               simID,
			DureeMois:           summary.DureeMois,
			NbPrets:             summary.NbPrets,
			CapitalEmprunte:     summary.CapitalEmprunte,
			CapitalDecesInitial: summary.CapitalDecesInitial,
			MensualiteTotale:    summary.MensualiteTotale,
			CoutAssurance:       summary.CoutAssurance,
			FiscalYear:          h.fiscalYear,
		})
		if err != nil {
			slog.Error("check evaluation failed", "sim_id", simID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "check evaluation failed",
			})
			return
		}
		checkResults = results
	}

	// 3. Aggregate into an advisory
	adv := h.processor.Process(ctx, &advisory.AdvisoryInput{
		TenantID:     tenantID,
		SimID:        simID,
		TraceID:      traceID,
		CheckResults: checkResults,
		StartTime:    start,
	})

	sim := &domain.CreditSimulation{
		ID:           simID,
		TenantID:     tenantID,
		Loans:        req.Loans,
		Global:       global,
		PerLoan:      perLoan,
		CheckResults: checkResults,
		Advisory:     adv,
		CreatedAt:    time.Now().UTC(),
	}

	// 4. Save simulation
	if h.repo != nil {
		if err := h.repo.SaveSimulation(ctx, tenantID, sim); err != nil {
			slog.Error("failed to save simulation", "sim_id", simID, "error", err)
		}
	}

	// 5. Publish completion and, when flagged, the alert
	if h.bus != nil {
		payload, _ := json.Marshal(sim)
		if err := h.bus.Publish(ctx, tenantID, domain.TopicSimulationCompleted, payload); err != nil {
			slog.Error("failed to publish simulation result", "sim_id", simID, "error", err)
		}
		if advisory.NeedsAttention(adv) {
			if err := h.bus.Publish(ctx, tenantID, domain.TopicAdvisoryAlert, payload); err != nil {
				slog.Error("failed to publish advisory alert", "sim_id", simID, "error", err)
			}
		}
	}

	resp := SimulationResponse{
		SimID:        simID,
		Status:       adv.Status,
		Score:        adv.Score,
		Reasons:      advisory.GetReasons(adv),
		Summary:      SummaryInfo(summary),
		Global:       global,
		PerLoan:      perLoan,
		CheckResults: checkResults,
	}
	resp.Metadata.TraceID = traceID
	resp.Metadata.TotalMs = time.Since(start).Milliseconds()
	resp.Metadata.Version = h.version

	writeJSON(w, http.StatusOK, resp)
}

// GetSimulation retrieves a stored simulation by ID.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)
	simID := chi.URLParam(r, "id")

	if simID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "simulation id is required",
		})
		return
	}

	if h.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "repository not available",
		})
		return
	}

	sim, err := h.repo.GetSimulation(ctx, tenantID, simID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("failed to get simulation", "id", simID, "error", err)
		}
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "simulation not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, sim)
}

// ============================================================================
// INCOME-TAX ADJUSTMENTS
// ============================================================================

// ImpotAdjustmentsRequest is the request body for POST /impot/adjustments.
type ImpotAdjustmentsRequest struct {
	// Year selects the fiscal settings; zero falls back to the
	// server's configured fiscal year.
	Year int `json:"year,omitempty"`

	Household domain.Household `json:"household"`

	// Annual salary base per declarant, used for the 10% deduction.
	SalaryD1 float64 `json:"salaryD1"`
	SalaryD2 float64 `json:"salaryD2"`

	// Deduction mode per declarant (abat10 or reels).
	RealModeD1 domain.RealMode `json:"realModeD1"`
	RealModeD2 domain.RealMode `json:"realModeD2"`

	// Declared actual expenses per declarant.
	RealExpensesD1 float64 `json:"realExpensesD1"`
	RealExpensesD2 float64 `json:"realExpensesD2"`
}

// ImpotAdjustmentsResponse is the response for POST /impot/adjustments.
type ImpotAdjustmentsResponse struct {
	Year            int                    `json:"year"`
	Parts           domain.Parts           `json:"parts"`
	PersonsACharge  int                    `json:"personsACharge"`
	Abat10D1        float64                `json:"abat10D1"`
	Abat10D2        float64                `json:"abat10D2"`
	ExtraDeductions float64                `json:"extraDeductions"`
	Deduction       domain.DeductionConfig `json:"deduction"`
}

// ImpotAdjustments computes the household parts, the per-declarant 10%
// deductions and the selected extra deductions for a tax household.
func (h *Handler) ImpotAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	var req ImpotAdjustmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.Household.Status != domain.StatusSingle && req.Household.Status != domain.StatusCouple {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "household.status must be 'single' or 'couple'",
		})
		return
	}

	year := req.Year
	if year == 0 {
		year = h.fiscalYear
	}

	// Resolve the deduction bounds for the year; statutory defaults when
	// the settings service is not wired.
	var cfg domain.DeductionConfig
	if h.settings != nil {
		fs, err := h.settings.Get(ctx, tenantID, year)
		if err != nil {
			slog.Error("failed to load fiscal settings", "year", year, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to load fiscal settings",
			})
			return
		}
		cfg = fs.Deduction
	} else {
		cfg = settings.DefaultSettings(year).Deduction
	}

	abat10D1 := impot.Abattement10(req.SalaryD1, &cfg)
	abat10D2 := impot.Abattement10(req.SalaryD2, &cfg)

	extra := impot.ExtraDeductions(domain.ExtraDeductionInput{
		Status:         req.Household.Status,
		RealModeD1:     req.RealModeD1,
		RealModeD2:     req.RealModeD2,
		Abat10SalD1:    abat10D1,
		Abat10SalD2:    abat10D2,
		RealExpensesD1: req.RealExpensesD1,
		RealExpensesD2: req.RealExpensesD2,
	})

	writeJSON(w, http.StatusOK, ImpotAdjustmentsResponse{
		Year:            year,
		Parts:           impot.EffectiveParts(req.Household),
		PersonsACharge:  impot.CountPersonsACharge(req.Household.Children),
		Abat10D1:        abat10D1,
		Abat10D2:        abat10D2,
		ExtraDeductions: extra,
		Deduction:       cfg,
	})
}

// ============================================================================
// CHECK MANAGEMENT
// ============================================================================

// ListChecks returns all loaded checks from the engine.
// Checks are loaded from the database at startup and can be reloaded via
// POST /checks/reload.
func (h *Handler) ListChecks(w http.ResponseWriter, r *http.Request) {
	loadedChecks := h.engine.GetLoadedChecks()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checks": loadedChecks,
		"count":  len(loadedChecks),
		"source": "database",
	})
}

// GetCheck retrieves a check by ID from the loaded engine checks.
func (h *Handler) GetCheck(w http.ResponseWriter, r *http.Request) {
	checkID := chi.URLParam(r, "id")

	if checkID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "check id is required",
		})
		return
	}

	for _, c := range h.engine.GetLoadedChecks() {
		if c.ID == checkID {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "check not found",
	})
}

// CreateCheckRequest is the request body for creating a check.
type CreateCheckRequest struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Expression  string             `json:"expression"`
	Bands       []domain.CheckBand `json:"bands"`
	Weight      float64            `json:"weight"`
	Enabled     bool               `json:"enabled"`
}

// CreateCheck creates a new check and saves it to the database.
// Checks are saved globally (tenant_id = "*") so they apply to all tenants.
// After saving, call POST /checks/reload to hot-reload into the engine.
func (h *Handler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.ID == "" || req.Name == "" || req.Expression == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "id, name, and expression are required",
		})
		return
	}

	checkConfig := &domain.CheckConfig{
		ID:          req.ID,
		TenantID:    GlobalTenantID,
		Name:        req.Name,
		Description: req.Description,
		Version:     "1.0.0",
		Expression:  req.Expression,
		Bands:       req.Bands,
		Weight:      req.Weight,
		Enabled:     req.Enabled,
	}

	// Validate CEL expression by attempting to load
	if err := h.engine.LoadCheck(checkConfig); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid CEL expression: " + err.Error(),
		})
		return
	}

	if h.repo != nil {
		if err := h.repo.SaveCheckConfig(ctx, GlobalTenantID, checkConfig); err != nil {
			slog.Error("failed to save check config", "id", checkConfig.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to save check",
			})
			return
		}
	}

	slog.Info("check created", "id", checkConfig.ID, "name", checkConfig.Name)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"check":   checkConfig,
		"message": "Check created. Call POST /checks/reload to apply changes.",
	})
}

// ReloadChecks reloads all checks from the database into the engine.
// This enables hot-reloading without server restart.
func (h *Handler) ReloadChecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "repository not available",
		})
		return
	}

	dbChecks, err := h.repo.ListCheckConfigs(ctx, GlobalTenantID)
	if err != nil {
		slog.Error("failed to list checks from database", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to load checks from database",
		})
		return
	}

	if err := h.engine.ReloadChecks(dbChecks); err != nil {
		slog.Error("failed to reload checks into engine", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to reload checks: " + err.Error(),
		})
		return
	}

	slog.Info("checks reloaded from database", "count", len(dbChecks))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "checks reloaded successfully",
		"count":   len(dbChecks),
	})
}

// ============================================================================
// FISCAL SETTINGS
// ============================================================================

// GetSettings returns the fiscal settings in force for a tax year.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "year must be a positive integer",
		})
		return
	}

	if h.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "settings service not available",
		})
		return
	}

	fs, err := h.settings.Get(ctx, tenantID, year)
	if err != nil {
		slog.Error("failed to get fiscal settings", "year", year, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to get fiscal settings",
		})
		return
	}

	writeJSON(w, http.StatusOK, fs)
}

// PutSettings stores the fiscal settings for a tax year.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := GetTenantID(ctx)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "year must be a positive integer",
		})
		return
	}

	if h.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "settings service not available",
		})
		return
	}

	var fs domain.FiscalSettings
	if err := json.NewDecoder(r.Body).Decode(&fs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}
	fs.Year = year

	if fs.Deduction.Plancher < 0 || fs.Deduction.Plafond < fs.Deduction.Plancher {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "deduction bounds must satisfy 0 <= plancher <= plafond",
		})
		return
	}

	if err := h.settings.Save(ctx, tenantID, &fs); err != nil {
		slog.Error("failed to save fiscal settings", "year", year, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to save fiscal settings",
		})
		return
	}

	slog.Info("fiscal settings updated", "tenant_id", tenantID, "year", year)
	writeJSON(w, http.StatusOK, &fs)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
