package rules

import "github.com/openpatrimoine/socle/internal/domain"

// valeursMobilieresTable covers securities accounts and equity plans.
var valeursMobilieresTable = familyTable{
	"pea": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Plafond de versement de 150 000 €.",
					"Un seul PEA par personne, réservé aux personnes physiques majeures domiciliées en France.",
					"Titres éligibles : actions européennes et fonds investis à 75 % minimum en actions européennes.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Retraits avant 5 ans",
				Bullets: []string{
					"Tout retrait entraîne la clôture du plan (sauf exceptions légales).",
					"Gain net imposé au prélèvement forfaitaire unique de 30 %.",
				},
			},
			{
				Title: "Retraits après 5 ans",
				Bullets: []string{
					"Gains exonérés d'impôt sur le revenu ; seuls les prélèvements sociaux de 17,2 % restent dus.",
					"Retraits partiels possibles sans clôture du plan.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Clôture automatique du plan ; les gains sont exonérés d'impôt sur le revenu, les prélèvements sociaux restent dus.",
					"Les titres intègrent l'actif successoral pour leur valeur au jour du décès.",
				},
			},
		},
	}),
	"pea_pme": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Plafond de versement de 225 000 €, commun avec le PEA classique.",
					"Titres éligibles : PME et ETI européennes.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Retraits",
				Bullets: []string{
					"Même régime que le PEA classique : exonération d'impôt sur le revenu après 5 ans, prélèvements sociaux dus.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Clôture du plan et intégration des titres à l'actif successoral.",
				},
			},
		},
	}),
	"cto": {
		pp: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Fonctionnement",
					Bullets: []string{
						"Aucun plafond de versement ni contrainte d'univers d'investissement.",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Cessions et revenus",
					Bullets: []string{
						"Plus-values et dividendes soumis au prélèvement forfaitaire unique de 30 %.",
						"Option globale possible pour le barème progressif, avec abattement de 40 % sur les dividendes.",
						"Imputation des moins-values sur les plus-values de même nature pendant 10 ans.",
					},
				},
			},
			Deces: []domain.RuleBlock{
				{
					Title: "Décès du titulaire",
					Bullets: []string{
						"Les titres intègrent l'actif successoral ; purge des plus-values latentes au jour du décès.",
					},
				},
			},
		},
		pm: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Fonctionnement",
					Bullets: []string{
						"Compte-titres ouvert au nom de la personne morale, sans plafond.",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Cessions et revenus",
					Bullets: []string{
						"Sociétés à l'IS : résultats de cession et revenus imposés au taux de droit commun de l'IS.",
						"Régime mère-fille possible sur les dividendes de participations éligibles.",
					},
				},
			},
			Deces: []domain.RuleBlock{},
		},
	},
}
