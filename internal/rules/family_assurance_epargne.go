package rules

import "github.com/openpatrimoine/socle/internal/domain"

// assuranceEpargneTable covers insurance-based savings wrappers.
var assuranceEpargneTable = familyTable{
	"assurance_vie": ppOnly(&domain.ProductRules{
		Constitution: []domain.RuleBlock{
			{
				Title: "Versements",
				Bullets: []string{
					"Versements libres ou programmés, sans plafond légal.",
					"Aucune déduction des versements du revenu imposable.",
					"Les intérêts capitalisés ne sont pas imposés tant qu'aucun rachat n'est effectué.",
				},
			},
		},
		Sortie: []domain.RuleBlock{
			{
				Title: "Rachats",
				Bullets: []string{
					"Seule la part de gains comprise dans le rachat est imposable.",
					"Contrat de plus de 8 ans : abattement annuel de 4 600 € (9 200 € pour un couple) sur les gains.",
					"Prélèvement forfaitaire unique de 30 % (12,8 % + 17,2 % de prélèvements sociaux), ramené à 24,7 % après 8 ans pour les primes n'excédant pas 150 000 €.",
					"Option possible pour le barème progressif de l'impôt sur le revenu.",
				},
			},
			{
				Title: "Sortie en rente",
				Bullets: []string{
					"Rente viagère imposée selon le régime de la rente à titre onéreux (fraction imposable selon l'âge au premier versement).",
				},
			},
		},
		Deces: []domain.RuleBlock{
			{
				Title: "Primes versées avant 70 ans",
				Bullets: []string{
					"Abattement de 152 500 € par bénéficiaire (article 990 I du CGI).",
					"Taxation de 20 % jusqu'à 700 000 € taxables, 31,25 % au-delà.",
					"Capitaux hors succession civile.",
				},
			},
			{
				Title: "Primes versées après 70 ans",
				Bullets: []string{
					"Abattement global de 30 500 € sur les primes (article 757 B du CGI).",
					"Au-delà, droits de succession selon le lien de parenté ; les gains restent exonérés.",
				},
			},
		},
	}),
	"contrat_capitalisation": {
		pp: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Versements",
					Bullets: []string{
						"Versements libres, sans plafond légal.",
						"Capitalisation des produits en franchise d'impôt tant qu'aucun rachat n'intervient.",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Rachats",
					Bullets: []string{
						"Fiscalité identique à l'assurance vie : seule la part de gains du rachat est imposée.",
						"Abattement après 8 ans de 4 600 € (9 200 € pour un couple).",
					},
				},
			},
			Deces: []domain.RuleBlock{
				{
					Title: "Transmission",
					Bullets: []string{
						"Le contrat ne se dénoue pas au décès : il entre dans la succession pour sa valeur vénale.",
						"Transmissible par donation ou succession avec maintien de l'antériorité fiscale.",
					},
				},
			},
		},
		pm: &domain.ProductRules{
			Constitution: []domain.RuleBlock{
				{
					Title: "Souscription par une personne morale",
					Bullets: []string{
						"Réservé aux personnes morales à l'IS ou aux sociétés patrimoniales non soumises à l'IS selon les conditions de la compagnie.",
						"Taxation annuelle forfaitaire des produits sur la base de 105 % du TME à la souscription (sociétés à l'IS).",
					},
				},
			},
			Sortie: []domain.RuleBlock{
				{
					Title: "Rachats",
					Bullets: []string{
						"Régularisation à la sortie : imposition du gain réel sous déduction des taxations forfaitaires déjà subies.",
					},
				},
			},
			Deces: []domain.RuleBlock{},
		},
	},
}
