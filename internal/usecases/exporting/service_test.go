package exporting

import (
	"testing"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	return &Service{
		contentRepository:    mocks.NewMockContentRepository(ctrl),
		newsletterRepository: mocks.NewMockNewsletterRepository(ctrl),
		campaignRepository:   mocks.NewMockCampaignRepository(ctrl),
		contactRepository:    mocks.NewMockContactRepository(ctrl),
		snapshotRepository:   mocks.NewMockSnapshotRepository(ctrl),
		insightRepository:    mocks.NewMockInsightRepository(ctrl),
	}, ctrl
}

func TestService_ExportHistoryRejectsUnknownFormat(t *testing.T) {
	service, _ := newTestService(t)

	for _, format := range []string{"csv", "xml", "yaml", ""} {
		_, err := service.ExportHistory(format)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestService_ExportHistorySerializesFullState(t *testing.T) {
	service, _ := newTestService(t)

	contentRepo := service.contentRepository.(*mocks.MockContentRepository)
	newsletterRepo := service.newsletterRepository.(*mocks.MockNewsletterRepository)
	campaignRepo := service.campaignRepository.(*mocks.MockCampaignRepository)
	contactRepo := service.contactRepository.(*mocks.MockContactRepository)
	snapshotRepo := service.snapshotRepository.(*mocks.MockSnapshotRepository)
	insightRepo := service.insightRepository.(*mocks.MockInsightRepository)

	contentRepo.EXPECT().
		ListContent().
		Return([]*domain.ContentItem{{ID: "CNT001", Topic: "automação", Title: "Automação para PMEs"}}, nil)

	newsletterRepo.EXPECT().
		ListNewslettersByContentID("CNT001").
		Return([]*domain.Newsletter{{ID: "NWS001", ContentID: "CNT001", Persona: domain.PersonaFounders}}, nil)

	campaignRepo.EXPECT().
		ListCampaigns(nil).
		Return([]*domain.Campaign{{ID: "CMP001", ContentID: "CNT001"}}, nil)

	for _, persona := range domain.Personas {
		contactRepo.EXPECT().ListContactsByPersona(persona).Return(nil, nil)
	}

	snapshotRepo.EXPECT().
		ListSnapshotsByCampaign("CMP001").
		Return([]*domain.PerformanceSnapshot{{ID: "SNP001", CampaignID: "CMP001", Persona: domain.PersonaFounders, OpenRate: 0.25}}, nil)

	insightRepo.EXPECT().
		ListInsightsByCampaign("CMP001").
		Return([]*domain.InsightRecord{{ID: "INS001", CampaignID: "CMP001", InsightText: "Campanha saudável"}}, nil)

	payload, err := service.ExportHistory("json")

	assert.NoError(t, err)

	var decoded HistoryExport
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.False(t, decoded.ExportedAt.IsZero())
	assert.Len(t, decoded.Content, 1)
	assert.Len(t, decoded.Newsletters, 1)
	assert.Len(t, decoded.Campaigns, 1)
	assert.Empty(t, decoded.Contacts)
	assert.Len(t, decoded.Snapshots, 1)
	assert.Equal(t, "Campanha saudável", decoded.Insights[0].InsightText)
}
