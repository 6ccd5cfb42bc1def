// Package credit implements loan amortization and insured
// capital-at-death computations.
//
// Capital-at-death is always re-derived from loan parameters and the
// beginning-of-period outstanding balance, never stored: it depends on the
// amortization order, and keeping it a pure derivation guarantees that
// every consumer of a schedule sees the same figures.
package credit

import "github.com/openpatrimoine/socle/internal/domain"

// CapitalDecesPeriod computes the insured capital at death for one period.
//
// A non-positive insurance rate means the loan carries no insurance and the
// result is 0 regardless of mode. In CI mode the fixed initial capital is
// insured for the whole term. In CRD mode the insured capital is exactly the
// supplied beginning-of-period outstanding balance; the rate only gates
// whether insurance applies, the premium computation lives elsewhere.
func CapitalDecesPeriod(params domain.LoanParams, crdDebut float64) float64 {
	if params.TauxAssur <= 0 {
		return 0
	}
	if params.AssurMode == domain.InsuranceCI {
		return params.Capital
	}
	return crdDebut
}

// CapitalDecesSchedule sets AssuranceDeces on every row of a schedule,
// deriving the beginning-of-period balance as crd + amort (the end-of-period
// balance plus the amount amortized during the period). All other fields
// pass through unchanged.
func CapitalDecesSchedule(params domain.LoanParams, schedule []domain.ScheduleRow) []domain.ScheduleRow {
	out := make([]domain.ScheduleRow, len(schedule))
	for i, row := range schedule {
		crdDebut := row.Crd + row.Amort
		row.AssuranceDeces = CapitalDecesPeriod(params, crdDebut)
		out[i] = row
	}
	return out
}

// AggregateCapitalDecesGlobal sums the capital-at-death series of several
// already-computed schedules. The result length equals the longest input
// schedule; a loan contributes nothing to periods beyond its own term.
func AggregateCapitalDecesGlobal(schedules [][]domain.ScheduleRow) []float64 {
	maxLen := 0
	for _, s := range schedules {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	out := make([]float64, maxLen)
	for _, s := range schedules {
		for i, row := range s {
			out[i] += row.AssuranceDeces
		}
	}
	return out
}

// GlobalCapitalDecesSchedule merges several per-loan schedules into one
// global schedule, recomputing capital-at-death per loan inline instead of
// materializing intermediate schedules. All numeric fields are summed per
// period index across the loans present at that period; Mois is 1-based.
func GlobalCapitalDecesSchedule(params []domain.LoanParams, schedules [][]domain.ScheduleRow) []domain.ScheduleRow {
	maxLen := 0
	for _, s := range schedules {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	out := make([]domain.ScheduleRow, maxLen)
	for i := range out {
		out[i].Mois = i + 1
	}

	for li, s := range schedules {
		for i, row := range s {
			out[i].Interet += row.Interet
			out[i].Assurance += row.Assurance
			out[i].Amort += row.Amort
			out[i].Mensu += row.Mensu
			out[i].MensuTotal += row.MensuTotal
			out[i].Crd += row.Crd
			out[i].AssuranceDeces += CapitalDecesPeriod(params[li], row.Crd+row.Amort)
		}
	}
	return out
}
