// Package impot provides the income-tax adjustment computations: household
// parts, the 10% standard deduction, extra deduction selection and
// dependents counting.
//
// Every function is total over its documented inputs: malformed input
// degrades to a zero or neutral result, never an error.
package impot

import "github.com/openpatrimoine/socle/internal/domain"

// Abattement10 computes the 10% standard deduction on a salary base,
// clamped between the statutory floor and cap. A nil config or a
// non-positive base yields 0.
func Abattement10(base float64, cfg *domain.DeductionConfig) float64 {
	if cfg == nil || base <= 0 {
		return 0
	}

	abattement := base * 0.10
	if abattement < cfg.Plancher {
		return cfg.Plancher
	}
	if abattement > cfg.Plafond {
		return cfg.Plafond
	}
	return abattement
}

// CountPersonsACharge counts the household children in charge: modes
// "charge" and "shared" count, anything else does not. A nil slice
// counts as zero.
func CountPersonsACharge(children []domain.Child) int {
	n := 0
	for _, c := range children {
		if c.Mode == domain.ChildCharge || c.Mode == domain.ChildShared {
			n++
		}
	}
	return n
}

// EffectiveParts computes the quotient familial parts of a household.
//
// Base is 1 for a single person, 2 for a couple; computed adds half a part
// per child in charge. The manual override (signed, quarter-part units) is
// applied last with no floor: effective parts can legitimately drop below
// the base.
//
// Only the documented increments are implemented here; any further bracket
// (third child onward, isolated-parent bonus) needs confirmation before it
// is added.
func EffectiveParts(h domain.Household) domain.Parts {
	base := 1.0
	if h.Status == domain.StatusCouple {
		base = 2.0
	}

	computed := base + 0.5*float64(CountPersonsACharge(h.Children))

	return domain.Parts{
		Base:      base,
		Computed:  computed,
		Effective: computed + h.ManualParts,
	}
}

// ExtraDeductions sums the selected deduction per household member:
// the precomputed 10% deduction when the member opted for "abat10", the
// declared actual expenses when the member opted for "reels". A single
// household only carries declarant 1.
func ExtraDeductions(in domain.ExtraDeductionInput) float64 {
	total := memberDeduction(in.RealModeD1, in.Abat10SalD1, in.RealExpensesD1)
	if in.Status == domain.StatusCouple {
		total += memberDeduction(in.RealModeD2, in.Abat10SalD2, in.RealExpensesD2)
	}
	return total
}

func memberDeduction(mode domain.RealMode, abat10, realExpenses float64) float64 {
	switch mode {
	case domain.RealAbat10:
		return abat10
	case domain.RealReels:
		return realExpenses
	default:
		return 0
	}
}
