package simulating

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// defaultContactsSent é usado quando a persona não tem contatos cadastrados
const defaultContactsSent = 100

type rateRange struct {
	min float64
	max float64
}

// Faixas de engajamento plausíveis por persona, calibradas com históricos de
// e-mail marketing B2B
var personaOpenRanges = map[domain.Persona]rateRange{
	domain.PersonaFounders:   {min: 0.22, max: 0.32},
	domain.PersonaCreatives:  {min: 0.25, max: 0.38},
	domain.PersonaOperations: {min: 0.18, max: 0.26},
}

var personaClickRanges = map[domain.Persona]rateRange{
	domain.PersonaFounders:   {min: 0.08, max: 0.14},
	domain.PersonaCreatives:  {min: 0.10, max: 0.17},
	domain.PersonaOperations: {min: 0.06, max: 0.11},
}

// unsubscribeRange é independente de persona
var unsubscribeRange = rateRange{min: 0.001, max: 0.01}

type Simulator interface {
	Simulate(campaignID string, persona domain.Persona, contactsSent int) (*domain.PerformanceSnapshot, error)
	Ingest(snapshot *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error)
	SimulateCampaign(campaignID string) ([]*domain.PerformanceSnapshot, error)
	ListSnapshots(campaignID string) ([]*domain.PerformanceSnapshot, error)
}

type Service struct {
	cfg                *config.Config
	campaignRepository repository.CampaignRepository
	contactRepository  repository.ContactRepository
	snapshotRepository repository.SnapshotRepository
	rng                *rand.Rand
}

// NewService cria o simulador de métricas. A fonte de aleatoriedade é injetada
// para permitir execuções determinísticas em teste.
func NewService(
	cfg *config.Config,
	campaignRepo repository.CampaignRepository,
	contactRepo repository.ContactRepository,
	snapshotRepo repository.SnapshotRepository,
	rng *rand.Rand,
) Simulator {
	return &Service{
		cfg:                cfg,
		campaignRepository: campaignRepo,
		contactRepository:  contactRepo,
		snapshotRepository: snapshotRepo,
		rng:                rng,
	}
}

// Simulate sorteia um snapshot plausível para o par (campanha, persona).
// As taxas sorteadas são persistidas como estão; as contagens derivam delas.
func (s *Service) Simulate(campaignID string, persona domain.Persona, contactsSent int) (*domain.PerformanceSnapshot, error) {
	if !persona.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersona, persona)
	}

	if contactsSent < 0 {
		return nil, fmt.Errorf("%w: contacts_sent negativo (%d)", ErrInvalidInput, contactsSent)
	}

	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	openRate := s.uniform(personaOpenRanges[persona])
	clickRate := s.uniform(personaClickRanges[persona])
	unsubscribeRate := s.uniform(unsubscribeRange)

	snapshot := &domain.PerformanceSnapshot{
		CampaignID:      campaignID,
		Persona:         persona,
		ContactsSent:    contactsSent,
		Opens:           capAt(round(float64(contactsSent)*openRate), contactsSent),
		Clicks:          capAt(round(float64(contactsSent)*clickRate), contactsSent),
		Unsubscribes:    capAt(round(float64(contactsSent)*unsubscribeRate), contactsSent),
		OpenRate:        utils.RoundWithFourDecimalPlace(openRate),
		ClickRate:       utils.RoundWithFourDecimalPlace(clickRate),
		UnsubscribeRate: utils.RoundWithFourDecimalPlace(unsubscribeRate),
	}

	saved, err := s.snapshotRepository.SaveSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"persona":     persona,
		"open_rate":   saved.OpenRate,
		"click_rate":  saved.ClickRate,
	}).Debug("simulator: snapshot generated")

	return saved, nil
}

// Ingest registra um snapshot real vindo do CRM: sem sorteio, apenas
// validação e derivação das taxas a partir das contagens brutas.
func (s *Service) Ingest(snapshot *domain.PerformanceSnapshot) (*domain.PerformanceSnapshot, error) {
	if !snapshot.Persona.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersona, snapshot.Persona)
	}

	if snapshot.ContactsSent < 0 || snapshot.Opens < 0 || snapshot.Clicks < 0 || snapshot.Unsubscribes < 0 {
		return nil, fmt.Errorf("%w: contagens negativas", ErrInvalidInput)
	}

	campaign, err := s.campaignRepository.GetCampaignByID(snapshot.CampaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, snapshot.CampaignID)
	}

	snapshot.Opens = capAt(snapshot.Opens, snapshot.ContactsSent)
	snapshot.Clicks = capAt(snapshot.Clicks, snapshot.ContactsSent)
	snapshot.Unsubscribes = capAt(snapshot.Unsubscribes, snapshot.ContactsSent)
	snapshot.DeriveRates()

	return s.snapshotRepository.SaveSnapshot(snapshot)
}

// SimulateCampaign gera um snapshot por persona usando a base de contatos
// como denominador e marca a campanha como analisada.
func (s *Service) SimulateCampaign(campaignID string) ([]*domain.PerformanceSnapshot, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	// Rascunho não pode pular direto para analisada: o envio vem antes
	if campaign.Status == domain.CampaignStatusDraft {
		return nil, fmt.Errorf("%w: campanha %s ainda não foi enviada", ErrInvalidTransition, campaignID)
	}

	snapshots := make([]*domain.PerformanceSnapshot, 0, len(domain.Personas))
	for _, persona := range domain.Personas {
		contactsSent, err := s.contactRepository.CountContactsByPersona(persona)
		if err != nil {
			return nil, err
		}

		if contactsSent == 0 {
			contactsSent = defaultContactsSent
		}

		snapshot, err := s.Simulate(campaignID, persona, contactsSent)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := s.campaignRepository.UpdateCampaignStatus(campaignID, domain.CampaignStatusAnalyzed, nil); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"snapshots":   len(snapshots),
	}).Info("simulator: campaign metrics generated")

	return snapshots, nil
}

// ListSnapshots retorna o histórico de snapshots da campanha em ordem
// cronológica crescente
func (s *Service) ListSnapshots(campaignID string) ([]*domain.PerformanceSnapshot, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	return s.snapshotRepository.ListSnapshotsByCampaign(campaignID)
}

func (s *Service) uniform(r rateRange) float64 {
	return r.min + s.rng.Float64()*(r.max-r.min)
}

func round(f float64) int {
	return int(math.Round(f))
}

func capAt(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}
