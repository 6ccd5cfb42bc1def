package credit

import "github.com/openpatrimoine/socle/internal/domain"

// Simulate builds one amortization schedule per loan and the merged
// global schedule across all loans.
func Simulate(loans []domain.Loan) (perLoan [][]domain.ScheduleRow, global []domain.ScheduleRow) {
	perLoan = make([][]domain.ScheduleRow, len(loans))
	params := make([]domain.LoanParams, len(loans))
	for i, loan := range loans {
		perLoan[i] = BuildSchedule(loan)
		params[i] = loan.LoanParams
	}
	global = GlobalCapitalDecesSchedule(params, perLoan)
	return perLoan, global
}

// Summary holds the aggregate figures of a simulation, as consumed by
// the check engine.
type Summary struct {
	DureeMois           int
	NbPrets             int
	CapitalEmprunte     float64
	CapitalDecesInitial float64
	MensualiteTotale    float64
	CoutAssurance       float64
}

// Summarize derives the aggregate figures from the input loans and the
// merged global schedule.
func Summarize(loans []domain.Loan, global []domain.ScheduleRow) Summary {
	s := Summary{
		DureeMois: len(global),
		NbPrets:   len(loans),
	}
	for _, loan := range loans {
		s.CapitalEmprunte += loan.Capital
	}
	if len(global) > 0 {
		s.CapitalDecesInitial = global[0].AssuranceDeces
		s.MensualiteTotale = global[0].MensuTotal
	}
	for _, row := range global {
		s.CoutAssurance += row.Assurance
	}
	return s
}
