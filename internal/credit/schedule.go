package credit

import (
	"math"

	"github.com/openpatrimoine/socle/internal/domain"
)

const monthsPerYear = 12

// MonthlyPayment computes the constant monthly payment of a loan using the
// standard annuity formula. Rates are annual, in percent. A zero rate falls
// back to linear repayment.
func MonthlyPayment(capital, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		return capital / float64(termMonths)
	}

	monthlyRate := annualRate / 100 / monthsPerYear
	power := math.Pow(1+monthlyRate, float64(termMonths))
	return capital * monthlyRate * power / (power - 1)
}

// InsurancePremium computes the monthly insurance premium for one period.
// The premium basis follows the insurance mode: fixed initial capital (CI)
// or beginning-of-period outstanding balance (CRD).
func InsurancePremium(params domain.LoanParams, crdDebut float64) float64 {
	if params.TauxAssur <= 0 {
		return 0
	}
	base := params.Capital
	if params.AssurMode == domain.InsuranceCRD {
		base = crdDebut
	}
	return base * params.TauxAssur / 100 / monthsPerYear
}

// BuildSchedule generates the full amortization schedule of a loan,
// including insurance premiums and insured capital-at-death per period.
// The final period absorbs rounding drift so the balance lands on zero.
func BuildSchedule(loan domain.Loan) []domain.ScheduleRow {
	if loan.DureeMois <= 0 || loan.Capital <= 0 {
		return []domain.ScheduleRow{}
	}

	mensu := MonthlyPayment(loan.Capital, loan.Taux, loan.DureeMois)
	monthlyRate := loan.Taux / 100 / monthsPerYear

	rows := make([]domain.ScheduleRow, loan.DureeMois)
	crd := loan.Capital

	for m := 0; m < loan.DureeMois; m++ {
		crdDebut := crd
		interet := crdDebut * monthlyRate
		amort := mensu - interet
		if m == loan.DureeMois-1 {
			// Absorb float drift on the last period.
			amort = crdDebut
		}
		crd = crdDebut - amort

		assurance := InsurancePremium(loan.LoanParams, crdDebut)

		rows[m] = domain.ScheduleRow{
			Mois:           m + 1,
			Interet:        interet,
			Assurance:      assurance,
			Amort:          amort,
			Mensu:          mensu,
			MensuTotal:     mensu + assurance,
			Crd:            crd,
			AssuranceDeces: CapitalDecesPeriod(loan.LoanParams, crdDebut),
		}
	}
	return rows
}
