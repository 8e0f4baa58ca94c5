package campaigning

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	// ErrCampaignNotFound indica que a campanha não existe
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// ErrContentNotFound indica violação de integridade: o conteúdo pai não existe
	ErrContentNotFound = errors.New("conteúdo referenciado não encontrado")

	// ErrInvalidTransition indica transição de status fora de draft → sent → analyzed
	ErrInvalidTransition = errors.New("transição de status inválida")
)

type Manager interface {
	CreateCampaign(contentID, name string) (*domain.Campaign, error)
	SendCampaign(campaignID string) (*domain.Campaign, error)
	GetCampaign(campaignID string) (*domain.Campaign, error)
	ListCampaigns(status *domain.CampaignStatus) ([]*domain.Campaign, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	contentRepository  repository.ContentRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	contentRepo repository.ContentRepository,
) Manager {
	return &Service{
		campaignRepository: campaignRepo,
		contentRepository:  contentRepo,
	}
}

// CreateCampaign cria a campanha em draft. A integridade referencial é
// validada antes da escrita: sem conteúdo pai, nada é gravado.
func (s *Service) CreateCampaign(contentID, name string) (*domain.Campaign, error) {
	content, err := s.contentRepository.GetContentByID(contentID)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	if name == "" {
		name = fmt.Sprintf("Campanha - %s", content.Title)
	}

	campaign, err := s.campaignRepository.CreateCampaign(&domain.Campaign{
		ContentID: contentID,
		Name:      name,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"content_id":  contentID,
	}).Info("campaigns: campaign created")

	return campaign, nil
}

// SendCampaign move a campanha de draft para sent, registra a data de envio e
// a referência externa atribuída pelo CRM.
func (s *Service) SendCampaign(campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	if campaign.Status != domain.CampaignStatusDraft {
		return nil, fmt.Errorf("%w: campanha %s está em %q", ErrInvalidTransition, campaignID, campaign.Status)
	}

	sendDate := time.Now().UTC()
	externalRef := uuid.NewString()

	// Status, data de envio e referência externa mudam juntos: uma falha no
	// meio não pode deixar campanha enviada sem referência no CRM
	if err := s.campaignRepository.MarkCampaignSent(campaignID, sendDate, externalRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: campanha %s já saiu do rascunho", ErrInvalidTransition, campaignID)
		}
		return nil, err
	}

	campaign.Status = domain.CampaignStatusSent
	campaign.SendDate = &sendDate
	campaign.ExternalCampaignRef = &externalRef

	logrus.WithFields(logrus.Fields{
		"campaign_id":  campaignID,
		"external_ref": externalRef,
	}).Info("campaigns: campaign sent")

	return campaign, nil
}

func (s *Service) GetCampaign(campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	return campaign, nil
}

func (s *Service) ListCampaigns(status *domain.CampaignStatus) ([]*domain.Campaign, error) {
	return s.campaignRepository.ListCampaigns(status)
}
