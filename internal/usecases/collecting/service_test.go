package collecting

import (
	"context"
	"errors"
	"testing"

	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	hubspotmocks "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/mocks"
	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	simulatingmocks "github.com/novamind/content-pipeline-api/internal/usecases/simulating/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type testFixture struct {
	service      *Service
	campaignRepo *mocks.MockCampaignRepository
	contactRepo  *mocks.MockContactRepository
	crm          *hubspotmocks.MockIntegrator
	simulator    *simulatingmocks.MockSimulator
}

func newTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	contactRepo := mocks.NewMockContactRepository(ctrl)
	crm := hubspotmocks.NewMockIntegrator(ctrl)
	simulator := simulatingmocks.NewMockSimulator(ctrl)

	service := &Service{
		cfg:                &config.Config{},
		campaignRepository: campaignRepo,
		contactRepository:  contactRepo,
		crm:                crm,
		simulator:          simulator,
	}

	return &testFixture{
		service:      service,
		campaignRepo: campaignRepo,
		contactRepo:  contactRepo,
		crm:          crm,
		simulator:    simulator,
	}
}

func TestService_SyncContactsCountsOnlySuccessfulUpserts(t *testing.T) {
	f := newTestFixture(t)

	contacts := []*domain.Contact{
		{Email: "ana@agencia.com", Persona: domain.PersonaFounders},
		{Email: "bruno@agencia.com", Persona: domain.PersonaCreatives},
		{Email: "carla@agencia.com", Persona: domain.PersonaOperations},
	}

	f.crm.EXPECT().ListContacts(gomock.Any()).Return(contacts, nil)

	f.contactRepo.EXPECT().UpsertContact(contacts[0]).Return(contacts[0], nil)
	f.contactRepo.EXPECT().UpsertContact(contacts[1]).Return(nil, errors.New("conexão perdida"))
	f.contactRepo.EXPECT().UpsertContact(contacts[2]).Return(contacts[2], nil)

	synced, err := f.service.SyncContacts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestService_CollectCampaignWithoutExternalRefFallsBackToSimulation(t *testing.T) {
	f := newTestFixture(t)

	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusSent}, nil)

	simulated := []*domain.PerformanceSnapshot{{CampaignID: "CMP001", Persona: domain.PersonaFounders}}
	f.simulator.EXPECT().SimulateCampaign("CMP001").Return(simulated, nil)

	snapshots, err := f.service.CollectCampaign(context.Background(), "CMP001")

	assert.NoError(t, err)
	assert.Equal(t, simulated, snapshots)
}

func TestService_CollectCampaignDistributesCountersProportionally(t *testing.T) {
	f := newTestFixture(t)

	externalRef := "hs-7781"
	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusSent, ExternalCampaignRef: &externalRef}, nil)

	f.crm.EXPECT().
		GetCampaignCounters(gomock.Any(), externalRef).
		Return(&hubspotdomain.CampaignCounters{Sent: 300, Open: 90, Click: 30, Unsubscribed: 3}, nil)

	// Bases iguais: cada persona recebe um terço de cada contador
	for _, persona := range domain.Personas {
		f.contactRepo.EXPECT().CountContactsByPersona(persona).Return(100, nil)
	}

	ingested := make([]*domain.PerformanceSnapshot, 0, len(domain.Personas))
	f.simulator.EXPECT().
		Ingest(gomock.Any()).
		DoAndReturn(func(snapshot *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error) {
			ingested = append(ingested, snapshot)
			return snapshot, nil
		}).
		Times(len(domain.Personas))

	f.campaignRepo.EXPECT().
		UpdateCampaignStatus("CMP001", domain.CampaignStatusAnalyzed, nil).
		Return(nil)

	snapshots, err := f.service.CollectCampaign(context.Background(), "CMP001")

	assert.NoError(t, err)
	assert.Len(t, snapshots, len(domain.Personas))

	for _, snapshot := range ingested {
		assert.Equal(t, 100, snapshot.ContactsSent)
		assert.Equal(t, 30, snapshot.Opens)
		assert.Equal(t, 10, snapshot.Clicks)
		assert.Equal(t, 1, snapshot.Unsubscribes)
	}
}

func TestService_CollectCampaignRejectsDraft(t *testing.T) {
	f := newTestFixture(t)

	externalRef := "hs-7781"
	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusDraft, ExternalCampaignRef: &externalRef}, nil)

	_, err := f.service.CollectCampaign(context.Background(), "CMP001")
	assert.ErrorIs(t, err, simulating.ErrInvalidTransition)
}

func TestService_CollectCampaignFailsForUnknownCampaign(t *testing.T) {
	f := newTestFixture(t)

	f.campaignRepo.EXPECT().GetCampaignByID("CMP404").Return(nil, nil)

	_, err := f.service.CollectCampaign(context.Background(), "CMP404")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestService_CollectPendingContinuesPastFailures(t *testing.T) {
	f := newTestFixture(t)

	status := domain.CampaignStatusSent
	f.campaignRepo.EXPECT().
		ListCampaigns(&status).
		Return([]*domain.Campaign{
			{ID: "CMP001", Status: status},
			{ID: "CMP002", Status: status},
		}, nil)

	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(nil, errors.New("banco indisponível"))

	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP002").
		Return(&domain.Campaign{ID: "CMP002", Status: status}, nil)

	f.simulator.EXPECT().
		SimulateCampaign("CMP002").
		Return([]*domain.PerformanceSnapshot{{CampaignID: "CMP002"}}, nil)

	collected, err := f.service.CollectPending(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, collected)
}
