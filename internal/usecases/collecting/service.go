package collecting

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	"github.com/sirupsen/logrus"
)

// ErrCampaignNotFound indica que a campanha referenciada não existe
var ErrCampaignNotFound = errors.New("campanha não encontrada")

// Collector sincroniza contatos do CRM e transforma contadores de campanha em
// snapshots persistidos. Campanhas sem referência externa caem na simulação.
type Collector interface {
	SyncContacts(ctx context.Context) (int, error)
	ListContacts(persona domain.Persona) ([]*domain.Contact, error)
	CollectCampaign(ctx context.Context, campaignID string) ([]*domain.PerformanceSnapshot, error)
	CollectPending(ctx context.Context) (int, error)
}

type Service struct {
	cfg                *config.Config
	campaignRepository repository.CampaignRepository
	contactRepository  repository.ContactRepository
	crm                hubspot.Integrator
	simulator          simulating.Simulator
}

func NewService(
	cfg *config.Config,
	campaignRepo repository.CampaignRepository,
	contactRepo repository.ContactRepository,
	crm hubspot.Integrator,
	simulator simulating.Simulator,
) Collector {
	return &Service{
		cfg:                cfg,
		campaignRepository: campaignRepo,
		contactRepository:  contactRepo,
		crm:                crm,
		simulator:          simulator,
	}
}

// SyncContacts importa a base de contatos do CRM e retorna quantos foram
// gravados. Contatos existentes são atualizados pelo e-mail.
func (s *Service) SyncContacts(ctx context.Context) (int, error) {
	contacts, err := s.crm.ListContacts(ctx)
	if err != nil {
		return 0, fmt.Errorf("erro ao listar contatos do CRM: %w", err)
	}

	synced := 0
	for _, contact := range contacts {
		if _, err := s.contactRepository.UpsertContact(contact); err != nil {
			logrus.WithFields(logrus.Fields{
				"email": contact.Email,
				"error": err.Error(),
			}).Error("collect: failed to upsert contact")
			continue
		}
		synced++
	}

	logrus.WithFields(logrus.Fields{
		"received": len(contacts),
		"synced":   synced,
	}).Info("collect: contacts synchronized from CRM")

	return synced, nil
}

// ListContacts retorna os contatos registrados para uma persona
func (s *Service) ListContacts(persona domain.Persona) ([]*domain.Contact, error) {
	return s.contactRepository.ListContactsByPersona(persona)
}

// CollectCampaign busca os contadores da campanha no CRM e registra um
// snapshot por persona, distribuindo os totais proporcionalmente à base de
// contatos de cada segmento. Sem referência externa, simula.
func (s *Service) CollectCampaign(ctx context.Context, campaignID string) ([]*domain.PerformanceSnapshot, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	// Rascunho não pode pular direto para analisada: o envio vem antes
	if campaign.Status == domain.CampaignStatusDraft {
		return nil, fmt.Errorf("%w: campanha %s ainda não foi enviada", simulating.ErrInvalidTransition, campaignID)
	}

	if campaign.ExternalCampaignRef == nil {
		logrus.WithField("campaign_id", campaignID).Info("collect: campaign has no external ref, falling back to simulation")
		return s.simulator.SimulateCampaign(campaignID)
	}

	counters, err := s.crm.GetCampaignCounters(ctx, *campaign.ExternalCampaignRef)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contadores no CRM: %w", err)
	}

	personaCounts := make(map[domain.Persona]int, len(domain.Personas))
	total := 0
	for _, persona := range domain.Personas {
		count, err := s.contactRepository.CountContactsByPersona(persona)
		if err != nil {
			return nil, err
		}
		personaCounts[persona] = count
		total += count
	}

	if total == 0 {
		logrus.WithField("campaign_id", campaignID).Warn("collect: no contacts registered, falling back to simulation")
		return s.simulator.SimulateCampaign(campaignID)
	}

	snapshots := make([]*domain.PerformanceSnapshot, 0, len(domain.Personas))
	for _, persona := range domain.Personas {
		share := float64(personaCounts[persona]) / float64(total)

		snapshot, err := s.simulator.Ingest(&domain.PerformanceSnapshot{
			CampaignID:   campaignID,
			Persona:      persona,
			ContactsSent: personaCounts[persona],
			Opens:        proportional(counters.Open, share),
			Clicks:       proportional(counters.Click, share),
			Unsubscribes: proportional(counters.Unsubscribed, share),
		})
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := s.campaignRepository.UpdateCampaignStatus(campaignID, domain.CampaignStatusAnalyzed, nil); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// CollectPending processa todas as campanhas com status "sent" e retorna
// quantas foram coletadas com sucesso. Falhas individuais não interrompem as
// demais.
func (s *Service) CollectPending(ctx context.Context) (int, error) {
	status := domain.CampaignStatusSent
	campaigns, err := s.campaignRepository.ListCampaigns(&status)
	if err != nil {
		return 0, err
	}

	collected := 0
	for _, campaign := range campaigns {
		if _, err := s.CollectCampaign(ctx, campaign.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("collect: failed to collect campaign metrics")
			continue
		}
		collected++
	}

	logrus.WithFields(logrus.Fields{
		"pending":   len(campaigns),
		"collected": collected,
	}).Info("collect: pending campaigns processed")

	return collected, nil
}

func proportional(total int, share float64) int {
	return int(math.Round(float64(total) * share))
}
