package domain

import "time"

// InsuranceMode selects the insured capital basis of a loan.
type InsuranceMode string

const (
	// InsuranceCI insures the fixed initial capital for the whole term.
	InsuranceCI InsuranceMode = "CI"

	// InsuranceCRD insures the declining outstanding balance.
	InsuranceCRD InsuranceMode = "CRD"
)

// LoanParams is a loan's insurance configuration.
type LoanParams struct {
	// Capital is the initial borrowed capital.
	Capital float64 `json:"capital"`

	// TauxAssur is the annual insurance rate in percent. A rate <= 0
	// means the loan carries no borrower insurance.
	TauxAssur float64 `json:"tauxAssur"`

	// AssurMode is the insured capital basis (CI or CRD).
	AssurMode InsuranceMode `json:"assurMode"`
}

// Loan holds the full terms of a loan for schedule generation.
type Loan struct {
	LoanParams

	// Taux is the annual nominal interest rate in percent.
	Taux float64 `json:"taux"`

	// DureeMois is the term in months.
	DureeMois int `json:"dureeMois"`
}

// ScheduleRow is one amortization period. Crd is the outstanding balance
// after this period's amortization; the balance before the period equals
// Crd + Amort of the same row. AssuranceDeces is always a defined number
// once the row has passed through the capital-at-death calculator.
type ScheduleRow struct {
	Mois           int     `json:"mois"`
	Interet        float64 `json:"interet"`
	Assurance      float64 `json:"assurance"`
	Amort          float64 `json:"amort"`
	Mensu          float64 `json:"mensu"`
	MensuTotal     float64 `json:"mensuTotal"`
	Crd            float64 `json:"crd"`
	AssuranceDeces float64 `json:"assuranceDeces"`
}

// CreditSimulation is a persisted credit simulation result.
type CreditSimulation struct {
	ID       string        `json:"id"`
	TenantID string        `json:"tenantId"`
	Loans    []Loan        `json:"loans"`
	Global   []ScheduleRow `json:"global"`

	// PerLoan holds one schedule per input loan, same order.
	PerLoan [][]ScheduleRow `json:"perLoan,omitempty"`

	CheckResults []CheckResult `json:"checkResults,omitempty"`
	Advisory     *Advisory     `json:"advisory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
