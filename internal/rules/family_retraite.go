package rules

import "github.com/openpatrimoine/socle/internal/domain"

// retraiteTable covers retirement savings plans.
var retraiteTable = familyTable{
	"perin_assurance": shared(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements volontaires",
				Bullets: []string{
					"Versements déductibles du revenu imposable dans la limite du plafond épargne retraite (10 % des revenus professionnels, plafonné à 8 PASS).",
					"Option possible pour la non-déduction à l'entrée, au profit d'une fiscalité allégée à la sortie.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Sortie en capital",
				Bullets: []string{
					"Part correspondant aux versements déduits : barème progressif de l'impôt sur le revenu (sans prélèvements sociaux).",
					"Part correspondant aux gains : prélèvement forfaitaire unique de 30 %.",
					"Déblocage anticipé possible pour l'acquisition de la résidence principale ou les accidents de la vie.",
				},
			},
			{
				Title: "Sortie en rente",
				Bullets: []string{
					"Rente imposée selon le régime des pensions de retraite (abattement de 10 %).",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès avant 70 ans",
				Bullets: []string{
					"Application du régime de l'article 990 I du CGI : abattement de 152 500 € par bénéficiaire.",
				},
			},
			{
				Title: "Décès après 70 ans",
				Bullets: []string{
					"Droits de succession après abattement global de 30 500 € (article 757 B du CGI), apprécié sur les capitaux versés et les gains.",
				},
			},
		},
	}),
	"perin_bancaire": shared(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements volontaires",
				Bullets: []string{
					"Même régime de déduction à l'entrée que le PER assurantiel (plafond épargne retraite).",
					"Détention de titres en compte-titres, pas de fonds en euros.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Sortie en capital ou en rente",
				Bullets: []string{
					"Fiscalité de sortie identique au PER assurantiel.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Transmission",
				Bullets: []string{
					"Pas de clause bénéficiaire : l'épargne intègre l'actif successoral et suit les droits de succession de droit commun.",
				},
			},
		},
	}),
	"madelin": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Cotisations",
				Bullets: []string{
					"Réservé aux travailleurs non salariés ; contrats fermés à la souscription depuis octobre 2020.",
					"Cotisations déductibles du bénéfice imposable dans la limite du plafond Madelin.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Sortie en rente",
				Bullets: []string{
					"Sortie exclusivement en rente viagère, imposée comme une pension de retraite.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès avant liquidation",
				Bullets: []string{
					"Rente de réversion éventuelle au profit du conjoint selon les options du contrat.",
				},
			},
		},
	}),
}
