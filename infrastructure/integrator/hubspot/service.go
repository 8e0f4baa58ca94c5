package hubspot

import (
	"context"
	"fmt"

	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/hubspotclient"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/sirupsen/logrus"
)

const contactsPageSize = 100

// Integrator é a camada de acesso ao CRM. A coleta agendada e a sincronização
// de contatos passam por aqui.
type Integrator interface {
	ListContacts(ctx context.Context) ([]*domain.Contact, error)
	GetCampaignCounters(ctx context.Context, campaignRef string) (*hubspotdomain.CampaignCounters, error)
}

type HubSpotIntegrator struct {
	cfg    *config.Config
	Client hubspotclient.Client
}

func New(cfg *config.Config, client hubspotclient.Client) *HubSpotIntegrator {
	return &HubSpotIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// NewFromConfig retorna o integrador real ou o mock, conforme a configuração
func NewFromConfig(cfg *config.Config) Integrator {
	if cfg.HubSpot.MockMode {
		logrus.Info("crm: mock mode enabled, skipping HubSpot client")
		return NewMockIntegrator()
	}

	return New(cfg, hubspotclient.NewClient(cfg))
}

func (s *HubSpotIntegrator) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	contacts := make([]*domain.Contact, 0)
	after := ""

	for {
		resp, err := s.Client.ListContacts(ctx, contactsPageSize, after)
		if err != nil {
			logrus.WithError(err).Error("crm: failed to list contacts from API")
			return nil, err
		}

		for _, result := range resp.Results {
			contact, err := factoryContact(result)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"external_id": result.ID,
					"error":       err.Error(),
				}).Warn("crm: skipping contact with invalid persona")
				continue
			}
			contacts = append(contacts, contact)
		}

		if resp.Paging == nil || resp.Paging.Next.After == "" {
			break
		}
		after = resp.Paging.Next.After
	}

	logrus.WithField("total", len(contacts)).Debug("crm: successfully listed contacts")

	return contacts, nil
}

func (s *HubSpotIntegrator) GetCampaignCounters(ctx context.Context, campaignRef string) (*hubspotdomain.CampaignCounters, error) {
	resp, err := s.Client.GetCampaignCounters(ctx, campaignRef)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_ref": campaignRef,
			"error":        err.Error(),
		}).Error("crm: failed to get campaign counters from API")
		return nil, err
	}

	return &resp.Counters, nil
}

func factoryContact(result hubspotdomain.ContactResult) (*domain.Contact, error) {
	persona, err := domain.ParsePersona(result.Properties.Persona)
	if err != nil {
		return nil, fmt.Errorf("contato %s: %w", result.ID, err)
	}

	externalRef := result.ID
	contact := &domain.Contact{
		Email:              result.Properties.Email,
		FirstName:          result.Properties.Firstname,
		LastName:           result.Properties.Lastname,
		Persona:            persona,
		ExternalContactRef: &externalRef,
	}

	if result.Properties.Company != "" {
		company := result.Properties.Company
		contact.Company = &company
	}

	return contact, nil
}
