package check

import "github.com/openpatrimoine/socle/internal/domain"

func floatPtr(v float64) *float64 { return &v }

// BuiltinChecks returns the default checks seeded for a tenant on first
// start. Tenants can replace or disable them through the config API.
func BuiltinChecks(tenantID string) []*domain.CheckConfig {
	return []*domain.CheckConfig{
		{
			ID:          "cout-assurance-ratio",
			TenantID:    tenantID,
			Name:        "Poids de l'assurance",
			Description: "Signale un cout d'assurance disproportionne par rapport au capital emprunte",
			Version:     "1.0.0",
			Expression:  "capital_emprunte > 0.0 ? cout_assurance / capital_emprunte : 0.0",
			Bands: []domain.CheckBand{
				{LowerLimit: floatPtr(0), UpperLimit: floatPtr(0.10), Outcome: domain.CheckOutcomeOK, Reason: "Cout d'assurance dans la norme"},
				{LowerLimit: floatPtr(0.10), UpperLimit: nil, Outcome: domain.CheckOutcomeAttention, Reason: "Cout d'assurance superieur a 10% du capital"},
			},
			Weight:  1.0,
			Enabled: true,
		},
		{
			ID:          "duree-longue",
			TenantID:    tenantID,
			Name:        "Duree d'emprunt",
			Description: "Signale une duree de remboursement au-dela de 25 ans",
			Version:     "1.0.0",
			Expression:  "duree_mois > 300 ? 1.0 : 0.0",
			Bands: []domain.CheckBand{
				{LowerLimit: floatPtr(0), UpperLimit: floatPtr(1), Outcome: domain.CheckOutcomeOK, Reason: "Duree standard"},
				{LowerLimit: floatPtr(1), UpperLimit: nil, Outcome: domain.CheckOutcomeAttention, Reason: "Duree superieure a 25 ans"},
			},
			Weight:  0.5,
			Enabled: true,
		},
		{
			ID:          "couverture-deces",
			TenantID:    tenantID,
			Name:        "Couverture deces",
			Description: "Verifie que le capital assure au deces couvre le capital emprunte",
			Version:     "1.0.0",
			Expression:  "capital_deces_initial >= capital_emprunte",
			Bands: []domain.CheckBand{
				{LowerLimit: floatPtr(1), UpperLimit: nil, Outcome: domain.CheckOutcomeOK, Reason: "Capital emprunte couvert"},
				{LowerLimit: floatPtr(0), UpperLimit: floatPtr(1), Outcome: domain.CheckOutcomeAttention, Reason: "Couverture deces partielle"},
			},
			Weight:  1.0,
			Enabled: true,
		},
	}
}
