package hubspotclient

import (
	"context"
	"net/http"
	"time"

	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	"github.com/novamind/content-pipeline-api/internal/config"
)

type Client interface {
	ListContacts(ctx context.Context, limit int, after string) (*hubspotdomain.ContactsResponse, error)
	GetCampaignCounters(ctx context.Context, campaignRef string) (*hubspotdomain.CampaignResponse, error)
}

type HubSpotClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &HubSpotClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
