package rules

import "github.com/openpatrimoine/socle/internal/domain"

// fiscauxImmobilierTable covers real-estate tax-incentive schemes.
// Last family in the resolver chain.
var fiscauxImmobilierTable = familyTable{
	"pinel": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Investissement",
				Bullets: []string{
					"Réduction d'impôt étalée sur la durée d'engagement de location (6, 9 ou 12 ans).",
					"Plafonds de loyer et de ressources du locataire à respecter.",
					"Dispositif fermé aux acquisitions postérieures au 31 décembre 2024.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Revente",
				Bullets: []string{
					"Plus-value immobilière des particuliers avec abattements pour durée de détention.",
					"Reprise de la réduction d'impôt en cas de rupture de l'engagement de location.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès de l'investisseur",
				Bullets: []string{
					"Le décès met fin à l'engagement sans reprise de l'avantage fiscal.",
				},
			},
		},
	}),
	"deficit_foncier": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Travaux déductibles",
				Bullets: []string{
					"Déficit imputable sur le revenu global dans la limite de 10 700 € par an, le surplus sur les revenus fonciers des 10 années suivantes.",
					"Obligation de location nue jusqu'au 31 décembre de la troisième année suivant l'imputation.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Revente",
				Bullets: []string{
					"Plus-value immobilière des particuliers ; les travaux déduits ne majorent pas le prix d'acquisition.",
				},
			},
		},
		Deces: []domain.RuleBlock{},
	}),
	"malraux": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Investissement",
				Bullets: []string{
					"Réduction d'impôt de 22 % ou 30 % des travaux selon le secteur, plafonnée à 400 000 € de travaux sur 4 ans.",
					"Hors plafonnement global des niches fiscales.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Revente",
				Bullets: []string{
					"Engagement de location de 9 ans ; plus-value immobilière de droit commun à la revente.",
				},
			},
		},
		Deces: []domain.RuleBlock{},
	}),
}
