package catalog

import (
	"testing"

	"github.com/openpatrimoine/socle/internal/domain"
)

func TestPERIgnoresAudience(t *testing.T) {
	for _, aud := range []domain.Audience{domain.AudiencePP, domain.AudiencePM} {
		id, ok := EnvelopeCatalogID(domain.EnvelopePER, aud, false)
		if !ok || id != "perin_assurance" {
			t.Errorf("PER %s perBancaire=false: got (%q, %v), want (perin_assurance, true)", aud, id, ok)
		}

		id, ok = EnvelopeCatalogID(domain.EnvelopePER, aud, true)
		if !ok || id != "perin_bancaire" {
			t.Errorf("PER %s perBancaire=true: got (%q, %v), want (perin_bancaire, true)", aud, id, ok)
		}
	}
}

func TestEnvelopeTable(t *testing.T) {
	cases := []struct {
		envelope domain.EnvelopeCode
		audience domain.Audience
		wantID   string
		wantOK   bool
	}{
		{domain.EnvelopeAV, domain.AudiencePP, "assurance_vie", true},
		{domain.EnvelopeAV, domain.AudiencePM, "contrat_capitalisation", true},
		{domain.EnvelopePEA, domain.AudiencePP, "pea", true},
		{domain.EnvelopePEA, domain.AudiencePM, "", false},
		{domain.EnvelopeCTO, domain.AudiencePP, "cto", true},
		{domain.EnvelopeCTO, domain.AudiencePM, "cto", true},
		{domain.EnvelopeSCPI, domain.AudiencePP, "scpi", true},
		{domain.EnvelopeSCPI, domain.AudiencePM, "scpi", true},
		{domain.EnvelopeCode("XYZ"), domain.AudiencePP, "", false},
	}

	for _, tc := range cases {
		id, ok := EnvelopeCatalogID(tc.envelope, tc.audience, false)
		if id != tc.wantID || ok != tc.wantOK {
			t.Errorf("EnvelopeCatalogID(%s, %s) = (%q, %v), want (%q, %v)",
				tc.envelope, tc.audience, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestStaticCatalogCoversMapperOutputs(t *testing.T) {
	c := NewStatic()

	envelopes := []domain.EnvelopeCode{
		domain.EnvelopeAV, domain.EnvelopePER, domain.EnvelopePEA,
		domain.EnvelopeCTO, domain.EnvelopeSCPI,
	}

	for _, env := range envelopes {
		for _, aud := range []domain.Audience{domain.AudiencePP, domain.AudiencePM} {
			for _, bancaire := range []bool{false, true} {
				id, ok := EnvelopeCatalogID(env, aud, bancaire)
				if !ok {
					continue
				}
				if _, found := c.Product(id); !found {
					t.Errorf("mapper produced %q but catalog has no such product", id)
				}
			}
		}
	}
}

func TestStaticCatalogUnknown(t *testing.T) {
	c := NewStatic()
	if p, ok := c.Product("nope"); ok || p != nil {
		t.Errorf("Product(nope) = (%v, %v), want (nil, false)", p, ok)
	}
}
