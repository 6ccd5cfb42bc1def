package rules

import "github.com/openpatrimoine/socle/internal/domain"

// prevoyanceTable covers death and disability protection products.
var prevoyanceTable = familyTable{
	"prevoyance_deces": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Cotisations",
				Bullets: []string{
					"Cotisations à fonds perdus, non déductibles du revenu imposable pour un contrat individuel.",
				},
			},
		},
		Sortie: []domain.RuleBlock{},
		Deces: []domain.RuleBlock{
			{
				Title: "Capital décès",
				Bullets: []string{
					"Capital versé au bénéficiaire désigné hors actif successoral.",
					"Seule la dernière prime annuelle versée après 70 ans entre dans l'assiette de l'article 757 B du CGI.",
				},
			},
		},
	}),
	"garantie_emprunteur": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Cotisations",
				Bullets: []string{
					"Cotisations calculées sur le capital initial ou sur le capital restant dû selon le contrat.",
					"Libre choix de l'assureur et résiliation possible à tout moment (loi Lemoine).",
				},
			},
		},
		Sortie: []domain.RuleBlock{},
		Deces: []domain.RuleBlock{
			{
				Title: "Mise en jeu de la garantie",
				Bullets: []string{
					"Le capital restant dû est remboursé au prêteur à hauteur de la quotité assurée.",
					"Le remboursement n'est pas imposable entre les mains des héritiers ; le bien est transmis libre de la dette couverte.",
				},
			},
		},
	}),
}
