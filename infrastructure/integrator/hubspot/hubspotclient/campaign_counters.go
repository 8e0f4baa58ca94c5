package hubspotclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	"github.com/sirupsen/logrus"
)

func (c *HubSpotClient) GetCampaignCounters(ctx context.Context, campaignRef string) (*hubspotdomain.CampaignResponse, error) {
	endpoint := fmt.Sprintf("%s/email/public/v1/campaigns/%s", c.config.HubSpot.BaseURL, campaignRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.HubSpot.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro da API de campanhas do HubSpot: status %d", resp.StatusCode)
	}

	var response hubspotdomain.CampaignResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}
