package exporting

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnsupportedFormat indica formato de exportação não reconhecido
var ErrUnsupportedFormat = errors.New("formato de exportação não suportado")

// HistoryExport é a projeção completa do estado atual, usada em backups e
// análises externas
type HistoryExport struct {
	ExportedAt  time.Time                     `json:"exported_at"`
	Content     []*domain.ContentItem         `json:"content"`
	Newsletters []*domain.Newsletter          `json:"newsletters"`
	Campaigns   []*domain.Campaign            `json:"campaigns"`
	Contacts    []*domain.Contact             `json:"contacts"`
	Snapshots   []*domain.PerformanceSnapshot `json:"snapshots"`
	Insights    []*domain.InsightRecord       `json:"insights"`
}

type Exporter interface {
	ExportHistory(format string) ([]byte, error)
}

type Service struct {
	contentRepository    repository.ContentRepository
	newsletterRepository repository.NewsletterRepository
	campaignRepository   repository.CampaignRepository
	contactRepository    repository.ContactRepository
	snapshotRepository   repository.SnapshotRepository
	insightRepository    repository.InsightRepository
}

func NewService(
	contentRepo repository.ContentRepository,
	newsletterRepo repository.NewsletterRepository,
	campaignRepo repository.CampaignRepository,
	contactRepo repository.ContactRepository,
	snapshotRepo repository.SnapshotRepository,
	insightRepo repository.InsightRepository,
) Exporter {
	return &Service{
		contentRepository:    contentRepo,
		newsletterRepository: newsletterRepo,
		campaignRepository:   campaignRepo,
		contactRepository:    contactRepo,
		snapshotRepository:   snapshotRepo,
		insightRepository:    insightRepo,
	}
}

// ExportHistory serializa o estado atual completo. Projeção pura: nenhuma
// escrita acontece durante a exportação.
func (s *Service) ExportHistory(format string) ([]byte, error) {
	if format != "json" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	export := &HistoryExport{
		ExportedAt:  time.Now().UTC(),
		Newsletters: make([]*domain.Newsletter, 0),
		Contacts:    make([]*domain.Contact, 0),
		Snapshots:   make([]*domain.PerformanceSnapshot, 0),
		Insights:    make([]*domain.InsightRecord, 0),
	}

	contents, err := s.contentRepository.ListContent()
	if err != nil {
		return nil, err
	}
	export.Content = contents

	for _, content := range contents {
		newsletters, err := s.newsletterRepository.ListNewslettersByContentID(content.ID)
		if err != nil {
			return nil, err
		}
		export.Newsletters = append(export.Newsletters, newsletters...)
	}

	campaigns, err := s.campaignRepository.ListCampaigns(nil)
	if err != nil {
		return nil, err
	}
	export.Campaigns = campaigns

	for _, persona := range domain.Personas {
		contacts, err := s.contactRepository.ListContactsByPersona(persona)
		if err != nil {
			return nil, err
		}
		export.Contacts = append(export.Contacts, contacts...)
	}

	for _, campaign := range campaigns {
		snapshots, err := s.snapshotRepository.ListSnapshotsByCampaign(campaign.ID)
		if err != nil {
			return nil, err
		}
		export.Snapshots = append(export.Snapshots, snapshots...)

		insights, err := s.insightRepository.ListInsightsByCampaign(campaign.ID)
		if err != nil {
			return nil, err
		}
		export.Insights = append(export.Insights, insights...)
	}

	return json.Marshal(export)
}
