package rules

import "github.com/openpatrimoine/socle/internal/domain"

// immobilierTable covers collective real-estate investments.
var immobilierTable = familyTable{
	"scpi": {
		pp: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Souscription",
					Bullets: []string{
						"Acquisition de parts au comptant, à crédit ou en démembrement.",
						"Frais de souscription prélevés sur le prix de part.",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Revenus",
					Bullets: []string{
						"Revenus fonciers imposés au barème progressif et aux prélèvements sociaux de 17,2 %.",
						"Régime micro-foncier possible sous 15 000 € de revenus fonciers bruts et sous conditions.",
					},
				},
				{
					Title: "Cession de parts",
					Bullets: []string{
						"Plus-values immobilières des particuliers : abattements pour durée de détention, exonération d'impôt après 22 ans et de prélèvements sociaux après 30 ans.",
					},
				},
			},
			Deces: []domain.RuleBlock{
				{
					Title: "Transmission",
					Bullets: []string{
						"Les parts intègrent l'actif successoral pour leur valeur de retrait au jour du décès.",
					},
				},
			},
		},
		pm: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Souscription",
					Bullets: []string{
						"Souscription possible par une personne morale, en pleine propriété ou en usufruit temporaire.",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Revenus",
					Bullets: []string{
						"Sociétés à l'IS : revenus et plus-values imposés au résultat ; amortissement possible de l'usufruit temporaire.",
					},
				},
			},
			Deces: []domain.RuleBlock{},
		},
	},
	"opci": shared(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Souscription",
				Bullets: []string{
					"Véhicule hybride immobilier et financier, souvent logé en assurance vie.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Revenus et cessions",
				Bullets: []string{
					"En détention directe (SPPICAV) : fiscalité des valeurs mobilières, prélèvement forfaitaire unique de 30 %.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Transmission",
				Bullets: []string{
					"Les parts intègrent l'actif successoral pour leur valeur liquidative au jour du décès.",
				},
			},
		},
	}),
}
