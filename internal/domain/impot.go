package domain

import "time"

// HouseholdStatus is the marital status of a tax household.
type HouseholdStatus string

const (
	StatusSingle HouseholdStatus = "single"
	StatusCouple HouseholdStatus = "couple"
)

// ChildMode classifies a child for the persons-in-charge count.
type ChildMode string

const (
	// ChildCharge is a dependent child counted in full.
	ChildCharge ChildMode = "charge"

	// ChildShared is a child in shared custody, still counted.
	ChildShared ChildMode = "shared"

	// ChildNone is a child excluded from the count.
	ChildNone ChildMode = "none"
)

// Child is one child of the household.
type Child struct {
	Mode ChildMode `json:"mode"`
}

// Household is the tax household composition used for the
// quotient familial parts computation.
type Household struct {
	Status     HouseholdStatus `json:"status"`
	IsIsolated bool            `json:"isIsolated"`
	Children   []Child         `json:"children"`

	// ManualParts is a signed user override in quarter-part units.
	ManualParts float64 `json:"manualParts"`
}

// Parts is the result of the household parts computation.
type Parts struct {
	Base      float64 `json:"base"`
	Computed  float64 `json:"computed"`
	Effective float64 `json:"effective"`
}

// DeductionConfig holds the statutory floor and cap of the 10%
// standard deduction. Supplied by the settings collaborator.
type DeductionConfig struct {
	Plancher float64 `json:"plancher"`
	Plafond  float64 `json:"plafond"`
}

// RealMode selects how a household member deducts professional expenses.
type RealMode string

const (
	// RealAbat10 applies the 10% standard deduction.
	RealAbat10 RealMode = "abat10"

	// RealReels deducts actual declared expenses.
	RealReels RealMode = "reels"
)

// ExtraDeductionInput carries the per-member deduction selection.
// A single household only has declarant 1; a couple has both.
type ExtraDeductionInput struct {
	Status HouseholdStatus `json:"status"`

	RealModeD1 RealMode `json:"realModeD1"`
	RealModeD2 RealMode `json:"realModeD2"`

	// Precomputed 10% deductions on each member's salary.
	Abat10SalD1 float64 `json:"abat10SalD1"`
	Abat10SalD2 float64 `json:"abat10SalD2"`

	// Declared actual expenses per member.
	RealExpensesD1 float64 `json:"realExpensesD1"`
	RealExpensesD2 float64 `json:"realExpensesD2"`
}

// FiscalSettings is a persisted, per-tax-year set of global parameters.
type FiscalSettings struct {
	Year      int             `json:"year"`
	Deduction DeductionConfig `json:"deduction"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
