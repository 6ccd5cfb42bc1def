package rules

import "github.com/openpatrimoine/socle/internal/domain"

// epargneBancaireTable covers regulated and bank savings accounts.
var epargneBancaireTable = familyTable{
	"livret_a": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Plafond de versement de 22 950 €.",
					"Un seul livret A par personne.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Intérêts",
				Bullets: []string{
					"Intérêts totalement exonérés d'impôt sur le revenu et de prélèvements sociaux.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Le livret est clôturé et son solde intègre l'actif successoral.",
				},
			},
		},
	}),
	"ldds": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Plafond de versement de 12 000 €.",
					"Réservé aux contribuables domiciliés fiscalement en France.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Intérêts",
				Bullets: []string{
					"Intérêts exonérés d'impôt sur le revenu et de prélèvements sociaux.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Clôture du livret ; le solde intègre l'actif successoral.",
				},
			},
		},
	}),
	"pel": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Versement initial minimal de 225 € puis 540 € par an.",
					"Plafond de versement de 61 200 €.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Intérêts",
				Bullets: []string{
					"PEL ouvert depuis 2018 : intérêts soumis au prélèvement forfaitaire unique de 30 % dès la première année.",
					"Tout retrait entraîne la clôture du plan.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Les héritiers peuvent poursuivre le plan ou le clôturer ; le solde intègre l'actif successoral.",
				},
			},
		},
	}),
	"compte_a_terme": shared(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Souscription",
				Bullets: []string{
					"Dépôt bloqué sur une durée contractuelle, taux garanti.",
					"Ouvert aux personnes physiques comme aux personnes morales.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Intérêts",
				Bullets: []string{
					"Personnes physiques : prélèvement forfaitaire unique de 30 % ou option pour le barème progressif.",
					"Personnes morales à l'IS : intérêts imposés au résultat dans les conditions de droit commun.",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Décès du titulaire",
				Bullets: []string{
					"Le compte intègre l'actif successoral pour sa valeur au jour du décès.",
				},
			},
		},
	}),
}
