package hubspot

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	"github.com/novamind/content-pipeline-api/internal/domain"
)

const mockContactsPerPersona = 8

// MockIntegrator simula o CRM em desenvolvimento: devolve uma base fixa de
// contatos por persona e contadores de campanha plausíveis.
type MockIntegrator struct {
	rng *rand.Rand
}

func NewMockIntegrator() *MockIntegrator {
	return &MockIntegrator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockIntegrator) ListContacts(_ context.Context) ([]*domain.Contact, error) {
	companies := map[domain.Persona]string{
		domain.PersonaFounders:   "Acme Ventures",
		domain.PersonaCreatives:  "Studio Brio",
		domain.PersonaOperations: "Fluxo Logística",
	}

	contacts := make([]*domain.Contact, 0, len(domain.Personas)*mockContactsPerPersona)
	for _, persona := range domain.Personas {
		for i := 1; i <= mockContactsPerPersona; i++ {
			externalRef := uuid.NewString()
			company := companies[persona]
			contacts = append(contacts, &domain.Contact{
				Email:              fmt.Sprintf("%s.%02d@example.com", persona, i),
				FirstName:          fmt.Sprintf("Contato%02d", i),
				LastName:           string(persona),
				Persona:            persona,
				Company:            &company,
				ExternalContactRef: &externalRef,
			})
		}
	}

	return contacts, nil
}

// GetCampaignCounters devolve contadores dentro de faixas plausíveis de
// e-mail marketing: abertura 20-40%, clique 5-15%, descadastro 0.1-1%.
func (m *MockIntegrator) GetCampaignCounters(_ context.Context, _ string) (*hubspotdomain.CampaignCounters, error) {
	sent := len(domain.Personas) * mockContactsPerPersona

	return &hubspotdomain.CampaignCounters{
		Sent:         sent,
		Open:         int(float64(sent) * m.uniform(0.20, 0.40)),
		Click:        int(float64(sent) * m.uniform(0.05, 0.15)),
		Unsubscribed: int(float64(sent) * m.uniform(0.001, 0.01)),
	}, nil
}

func (m *MockIntegrator) uniform(min, max float64) float64 {
	return min + m.rng.Float64()*(max-min)
}
