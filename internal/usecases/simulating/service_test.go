package simulating

import (
	"math/rand"
	"testing"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockCampaignRepository, *mocks.MockContactRepository, *mocks.MockSnapshotRepository) {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	contactRepo := mocks.NewMockContactRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

	service := &Service{
		cfg:                &config.Config{},
		campaignRepository: campaignRepo,
		contactRepository:  contactRepo,
		snapshotRepository: snapshotRepo,
		rng:                rand.New(rand.NewSource(42)),
	}

	return service, campaignRepo, contactRepo, snapshotRepo
}

func passthroughSave(snapshotRepo *mocks.MockSnapshotRepository) {
	snapshotRepo.EXPECT().
		SaveSnapshot(gomock.Any()).
		DoAndReturn(func(s *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error) {
			return s, nil
		}).
		AnyTimes()
}

func TestService_SimulateKeepsRatesWithinPersonaRanges(t *testing.T) {
	service, campaignRepo, _, snapshotRepo := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusSent}, nil).
		AnyTimes()
	passthroughSave(snapshotRepo)

	// Várias rodadas para dar chance ao sorteio de violar os limites
	for i := 0; i < 50; i++ {
		for _, persona := range domain.Personas {
			snapshot, err := service.Simulate("CMP001", persona, 1000)
			assert.NoError(t, err)

			openRange := personaOpenRanges[persona]
			clickRange := personaClickRanges[persona]

			assert.GreaterOrEqual(t, snapshot.OpenRate, openRange.min)
			assert.LessOrEqual(t, snapshot.OpenRate, openRange.max)
			assert.GreaterOrEqual(t, snapshot.ClickRate, clickRange.min)
			assert.LessOrEqual(t, snapshot.ClickRate, clickRange.max)
			assert.GreaterOrEqual(t, snapshot.UnsubscribeRate, unsubscribeRange.min)
			assert.LessOrEqual(t, snapshot.UnsubscribeRate, unsubscribeRange.max)

			assert.LessOrEqual(t, snapshot.Opens, snapshot.ContactsSent)
			assert.LessOrEqual(t, snapshot.Clicks, snapshot.ContactsSent)
			assert.LessOrEqual(t, snapshot.Unsubscribes, snapshot.ContactsSent)
		}
	}
}

func TestService_SimulateValidation(t *testing.T) {
	tests := []struct {
		name        string
		persona     domain.Persona
		contacts    int
		setup       func(campaignRepo *mocks.MockCampaignRepository)
		expectedErr error
	}{
		{
			name:        "Persona desconhecida é rejeitada",
			persona:     domain.Persona("investors"),
			contacts:    100,
			setup:       func(campaignRepo *mocks.MockCampaignRepository) {},
			expectedErr: ErrInvalidPersona,
		},
		{
			name:        "Contagem negativa é rejeitada",
			persona:     domain.PersonaFounders,
			contacts:    -1,
			setup:       func(campaignRepo *mocks.MockCampaignRepository) {},
			expectedErr: ErrInvalidInput,
		},
		{
			name:     "Campanha inexistente é rejeitada",
			persona:  domain.PersonaFounders,
			contacts: 100,
			setup: func(campaignRepo *mocks.MockCampaignRepository) {
				campaignRepo.EXPECT().GetCampaignByID("CMP404").Return(nil, nil)
			},
			expectedErr: ErrCampaignNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, campaignRepo, _, _ := newTestService(t)
			tt.setup(campaignRepo)

			_, err := service.Simulate("CMP404", tt.persona, tt.contacts)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestService_SimulateCampaignRejectsDraft(t *testing.T) {
	service, campaignRepo, _, _ := newTestService(t)

	// Nenhuma expectativa de UpdateCampaignStatus: rascunho não vira analisada
	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusDraft}, nil)

	_, err := service.SimulateCampaign("CMP001")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_IngestDerivesRatesAndCapsCounts(t *testing.T) {
	service, campaignRepo, _, snapshotRepo := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001"}, nil)
	passthroughSave(snapshotRepo)

	snapshot, err := service.Ingest(&domain.PerformanceSnapshot{
		CampaignID:   "CMP001",
		Persona:      domain.PersonaCreatives,
		ContactsSent: 100,
		Opens:        150, // acima do total enviado, deve ser limitado
		Clicks:       20,
		Unsubscribes: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, snapshot.Opens)
	assert.Equal(t, 1.0, snapshot.OpenRate)
	assert.Equal(t, 0.2, snapshot.ClickRate)
	assert.Equal(t, 0.01, snapshot.UnsubscribeRate)
}

func TestService_IngestRejectsNegativeCounts(t *testing.T) {
	service, _, _, _ := newTestService(t)

	_, err := service.Ingest(&domain.PerformanceSnapshot{
		CampaignID:   "CMP001",
		Persona:      domain.PersonaCreatives,
		ContactsSent: 100,
		Opens:        -5,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SimulateCampaignUsesContactBaseAndMarksAnalyzed(t *testing.T) {
	service, campaignRepo, contactRepo, snapshotRepo := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusSent}, nil).
		AnyTimes()
	passthroughSave(snapshotRepo)

	// founders tem base cadastrada, as demais caem no padrão
	contactRepo.EXPECT().CountContactsByPersona(domain.PersonaFounders).Return(250, nil)
	contactRepo.EXPECT().CountContactsByPersona(domain.PersonaCreatives).Return(0, nil)
	contactRepo.EXPECT().CountContactsByPersona(domain.PersonaOperations).Return(0, nil)

	campaignRepo.EXPECT().
		UpdateCampaignStatus("CMP001", domain.CampaignStatusAnalyzed, nil).
		Return(nil)

	snapshots, err := service.SimulateCampaign("CMP001")

	assert.NoError(t, err)
	assert.Len(t, snapshots, len(domain.Personas))
	assert.Equal(t, 250, snapshots[0].ContactsSent)
	assert.Equal(t, defaultContactsSent, snapshots[1].ContactsSent)
	assert.Equal(t, defaultContactsSent, snapshots[2].ContactsSent)
}
