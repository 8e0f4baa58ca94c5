package campaigning

import (
	"database/sql"
	"testing"
	"time"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockCampaignRepository, *mocks.MockContentRepository) {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	contentRepo := mocks.NewMockContentRepository(ctrl)

	service := &Service{
		campaignRepository: campaignRepo,
		contentRepository:  contentRepo,
	}

	return service, campaignRepo, contentRepo
}

func TestService_CreateCampaign(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(campaignRepo *mocks.MockCampaignRepository, contentRepo *mocks.MockContentRepository)
		validate func(t *testing.T, campaign *domain.Campaign, err error)
	}{
		{
			name: "Conteúdo inexistente viola a integridade referencial",
			setup: func(campaignRepo *mocks.MockCampaignRepository, contentRepo *mocks.MockContentRepository) {
				contentRepo.EXPECT().GetContentByID("CNT404").Return(nil, nil)
			},
			validate: func(t *testing.T, campaign *domain.Campaign, err error) {
				assert.ErrorIs(t, err, ErrContentNotFound)
				assert.Nil(t, campaign)
			},
		},
		{
			name: "Campanha sem nome herda o título do conteúdo",
			setup: func(campaignRepo *mocks.MockCampaignRepository, contentRepo *mocks.MockContentRepository) {
				contentRepo.EXPECT().
					GetContentByID("CNT404").
					Return(&domain.ContentItem{ID: "CNT404", Title: "Automação para PMEs"}, nil)

				campaignRepo.EXPECT().
					CreateCampaign(gomock.Any()).
					DoAndReturn(func(campaign *domain.Campaign) (*domain.Campaign, error) {
						campaign.ID = "CMP001"
						campaign.Status = domain.CampaignStatusDraft
						return campaign, nil
					})
			},
			validate: func(t *testing.T, campaign *domain.Campaign, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "Campanha - Automação para PMEs", campaign.Name)
				assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, campaignRepo, contentRepo := newTestService(t)
			tt.setup(campaignRepo, contentRepo)

			campaign, err := service.CreateCampaign("CNT404", "")
			tt.validate(t, campaign, err)
		})
	}
}

func TestService_SendCampaign(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusDraft}, nil)

	// Status, data de envio e referência externa são gravados em uma única
	// escrita
	var capturedSendDate time.Time
	var capturedExternalRef string
	campaignRepo.EXPECT().
		MarkCampaignSent("CMP001", gomock.Any(), gomock.Any()).
		DoAndReturn(func(campaignID string, sendDate time.Time, externalRef string) error {
			capturedSendDate = sendDate
			capturedExternalRef = externalRef
			return nil
		})

	campaign, err := service.SendCampaign("CMP001")

	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignStatusSent, campaign.Status)
	assert.False(t, capturedSendDate.IsZero())
	assert.Equal(t, &capturedSendDate, campaign.SendDate)
	assert.NotNil(t, campaign.ExternalCampaignRef)
	assert.Equal(t, capturedExternalRef, *campaign.ExternalCampaignRef)
}

func TestService_SendCampaignRejectsConcurrentSend(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusDraft}, nil)

	// Outra requisição enviou a campanha entre a leitura e a escrita: o
	// UPDATE condicionado ao rascunho não afeta nenhuma linha
	campaignRepo.EXPECT().
		MarkCampaignSent("CMP001", gomock.Any(), gomock.Any()).
		Return(sql.ErrNoRows)

	_, err := service.SendCampaign("CMP001")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_SendCampaignRejectsNonDraft(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Status: domain.CampaignStatusSent}, nil)

	_, err := service.SendCampaign("CMP001")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_SendCampaignFailsForUnknownCampaign(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP404").
		Return(nil, nil)

	_, err := service.SendCampaign("CMP404")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestService_GetCampaignFailsForUnknownCampaign(t *testing.T) {
	service, campaignRepo, _ := newTestService(t)

	campaignRepo.EXPECT().
		GetCampaignByID("CMP404").
		Return(nil, nil)

	_, err := service.GetCampaign("CMP404")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}
