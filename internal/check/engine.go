// Package check provides the CEL-Go based simulation check engine.
package check

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/openpatrimoine/socle/internal/domain"
)

// Engine is the CEL-based check evaluation engine.
type Engine struct {
	mu             sync.RWMutex
	env            *cel.Env
	compiledChecks map[string]*CompiledCheck
	settingsGetter SettingsGetter
	maxWorkers     int
}

// CompiledCheck holds a pre-compiled CEL program.
type CompiledCheck struct {
	Config  *domain.CheckConfig
	Program cel.Program
}

// SettingsGetter returns the fiscal settings in force for a tenant and year.
type SettingsGetter func(ctx context.Context, tenantID string, year int) (*domain.FiscalSettings, error)

// NewEngine creates a new check evaluation engine.
func NewEngine(settingsGetter SettingsGetter, maxWorkers int) (*Engine, error) {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	// Create CEL environment with simulation summary variables
	env, err := cel.NewEnv(
		cel.Variable("sim", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("duree_mois", cel.IntType),
		cel.Variable("nb_prets", cel.IntType),
		cel.Variable("capital_emprunte", cel.DoubleType),
		cel.Variable("capital_deces_initial", cel.DoubleType),
		cel.Variable("mensualite_totale", cel.DoubleType),
		cel.Variable("cout_assurance", cel.DoubleType),
		// Fiscal settings variables (zero when no settings are loaded)
		cel.Variable("abattement_plancher", cel.DoubleType),
		cel.Variable("abattement_plafond", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{
		env:            env,
		compiledChecks: make(map[string]*CompiledCheck),
		settingsGetter: settingsGetter,
		maxWorkers:     maxWorkers,
	}, nil
}

// ValidateCheck compiles and validates a check without mutating loaded engine checks.
func (e *Engine) ValidateCheck(cfg *domain.CheckConfig) error {
	if cfg == nil {
		return fmt.Errorf("check config is required")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	_, err := e.compileCheck(cfg)
	return err
}

// LoadCheck compiles and loads a check into the engine.
func (e *Engine) LoadCheck(cfg *domain.CheckConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	compiled, err := e.compileCheck(cfg)
	if err != nil {
		return err
	}

	e.compiledChecks[cfg.ID] = compiled

	return nil
}

// LoadChecks compiles and loads multiple checks.
func (e *Engine) LoadChecks(configs []*domain.CheckConfig) error {
	for _, cfg := range configs {
		if cfg.Enabled {
			if err := e.LoadCheck(cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// EvaluateInput holds the simulation summary for check evaluation.
type EvaluateInput struct {
	TenantID            string
	SimID               string
	DureeMois           int
	NbPrets             int
	CapitalEmprunte     float64
	CapitalDecesInitial float64
	MensualiteTotale    float64
	CoutAssurance       float64
	FiscalYear          int
	AdditionalData      map[string]any
}

// EvaluateAll evaluates all loaded checks in parallel.
func (e *Engine) EvaluateAll(ctx context.Context, input *EvaluateInput) ([]domain.CheckResult, error) {
	e.mu.RLock()
	checks := make([]*CompiledCheck, 0, len(e.compiledChecks))
	for _, c := range e.compiledChecks {
		checks = append(checks, c)
	}
	e.mu.RUnlock()

	if len(checks) == 0 {
		return nil, nil
	}

	// Resolve fiscal settings if a getter is available
	var plancher, plafond float64
	if e.settingsGetter != nil && input.FiscalYear > 0 {
		settings, err := e.settingsGetter(ctx, input.TenantID, input.FiscalYear)
		if err == nil && settings != nil {
			plancher = settings.Deduction.Plancher
			plafond = settings.Deduction.Plafond
		}
	}

	// Prepare CEL activation variables
	activation := map[string]any{
		"sim": map[string]any{
			"id":                    input.SimID,
			"duree_mois":            input.DureeMois,
			"nb_prets":              input.NbPrets,
			"capital_emprunte":      input.CapitalEmprunte,
			"capital_deces_initial": input.CapitalDecesInitial,
			"mensualite_totale":     input.MensualiteTotale,
			"cout_assurance":        input.CoutAssurance,
		},
		"duree_mois":            input.DureeMois,
		"nb_prets":              input.NbPrets,
		"capital_emprunte":      input.CapitalEmprunte,
		"capital_deces_initial": input.CapitalDecesInitial,
		"mensualite_totale":     input.MensualiteTotale,
		"cout_assurance":        input.CoutAssurance,
		"abattement_plancher":   plancher,
		"abattement_plafond":    plafond,
	}

	// Merge additional data
	for k, v := range input.AdditionalData {
		activation[k] = v
	}

	// Parallel evaluation using worker pool pattern
	results := make([]domain.CheckResult, len(checks))
	var wg sync.WaitGroup

	// Limit concurrency with semaphore
	sem := make(chan struct{}, e.maxWorkers)

	for i, c := range checks {
		wg.Add(1)
		go func(idx int, cc *CompiledCheck) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			results[idx] = e.evaluateCheck(ctx, cc, activation, input)
		}(i, c)
	}

	wg.Wait()

	return results, nil
}

// evaluateCheck evaluates a single check and returns the result.
func (e *Engine) evaluateCheck(ctx context.Context, c *CompiledCheck, activation map[string]any, input *EvaluateInput) domain.CheckResult {
	start := time.Now()

	result := domain.CheckResult{
		CheckID:  c.Config.ID,
		TenantID: input.TenantID,
		SimID:    input.SimID,
		Weight:   c.Config.Weight,
	}

	// Evaluate CEL expression
	out, _, err := c.Program.Eval(activation)
	if err != nil {
		result.Outcome = domain.CheckOutcomeError
		result.Reason = fmt.Sprintf("evaluation error: %v", err)
		result.ProcessMs = time.Since(start).Milliseconds()
		return result
	}

	// Convert result to score
	score := toScore(out)
	result.Score = score

	// Determine outcome based on bands
	result.Outcome, result.Reason = matchBand(score, c.Config.Bands)
	result.ProcessMs = time.Since(start).Milliseconds()

	return result
}

// toScore converts a CEL value to a numeric score.
func toScore(val ref.Val) float64 {
	switch v := val.(type) {
	case types.Bool:
		if v {
			return 1.0
		}
		return 0.0
	case types.Double:
		return float64(v)
	case types.Int:
		return float64(v)
	default:
		return 0.0
	}
}

// matchBand finds the matching band for a score.
// Bands are evaluated in order. Use lower inclusive, upper exclusive,
// except when upper is nil (meaning infinity).
func matchBand(score float64, bands []domain.CheckBand) (string, string) {
	for _, band := range bands {
		lower := 0.0
		hasUpper := band.UpperLimit != nil
		upper := float64(1e9) // effectively infinity

		if band.LowerLimit != nil {
			lower = *band.LowerLimit
		}
		if hasUpper {
			upper = *band.UpperLimit
		}

		// Match: lower <= score < upper (or lower <= score if no upper bound)
		if score >= lower {
			if !hasUpper || score < upper {
				return band.Outcome, band.Reason
			}
			// Special case: if score equals upper and this is the last band, match it
			if score == upper && band.UpperLimit != nil {
				// Continue to next band which should have this as its lower
				continue
			}
		}
	}

	// Default to OK if no band matches
	return domain.CheckOutcomeOK, "no matching band"
}

// ChecksCount returns the number of loaded checks.
func (e *Engine) ChecksCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.compiledChecks)
}

// ReloadChecks clears all existing checks and loads new ones.
// This enables hot-reloading of check configs from the database.
func (e *Engine) ReloadChecks(configs []*domain.CheckConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	newChecks := make(map[string]*CompiledCheck)

	// Load new checks
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}

		compiled, err := e.compileCheck(cfg)
		if err != nil {
			return err
		}
		newChecks[cfg.ID] = compiled
	}

	e.compiledChecks = newChecks

	return nil
}

// GetLoadedChecks returns the currently loaded check configurations.
func (e *Engine) GetLoadedChecks() []*domain.CheckConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()

	checks := make([]*domain.CheckConfig, 0, len(e.compiledChecks))
	for _, compiled := range e.compiledChecks {
		checks = append(checks, compiled.Config)
	}
	return checks
}

// Close cleans up the engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compiledChecks = make(map[string]*CompiledCheck)
	return nil
}

func (e *Engine) compileCheck(cfg *domain.CheckConfig) (*CompiledCheck, error) {
	ast, issues := e.env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile check %s: %w", cfg.ID, issues.Err())
	}

	outputType := ast.OutputType()
	if outputType != cel.BoolType && outputType != cel.DoubleType && outputType != cel.IntType {
		return nil, fmt.Errorf("check %s: expression must return bool, int, or double, got %s", cfg.ID, outputType)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for check %s: %w", cfg.ID, err)
	}

	return &CompiledCheck{
		Config:  cfg,
		Program: program,
	}, nil
}
