package rules

import "github.com/openpatrimoine/socle/internal/domain"

// autresTable covers miscellaneous tax-advantaged holdings.
var autresTable = familyTable{
	"fcpi_fip": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Souscription",
				Bullets: []string{
					"Réduction d'impôt sur le revenu de 18 % des versements (25 % selon les millésimes), plafonnée à 12 000 € de versements (24 000 € pour un couple).",
					"Engagement de conservation des parts de 5 ans minimum.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Cession après 5 ans",
				Bullets: []string{
					"Plus-values exonérées d'impôt sur le revenu ; prélèvements sociaux de 17,2 % dus.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du porteur",
				Bullets: []string{
					"Le décès ne remet pas en cause la réduction d'impôt obtenue.",
					"Les parts intègrent l'actif successoral.",
				},
			},
		},
	}),
	"girardin": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Souscription",
				Bullets: []string{
					"Investissement à fonds perdus ouvrant droit à une réduction d'impôt one-shot supérieure au versement.",
					"Réduction soumise au plafonnement global des niches fiscales outre-mer (18 000 €).",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Dénouement",
				Bullets: []string{
					"Aucun capital récupéré au terme : l'avantage se limite à la réduction d'impôt.",
					"Reprise de l'avantage en cas de non-respect de l'engagement de location de 5 ans.",
				},
			},
		},
		Deces: []domain.RuleBlock{},
	}),
}
