package hubspotclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	hubspotdomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot/domain"
	"github.com/sirupsen/logrus"
)

func (c *HubSpotClient) ListContacts(ctx context.Context, limit int, after string) (*hubspotdomain.ContactsResponse, error) {
	params := url.Values{}
	params.Add("limit", strconv.Itoa(limit))
	params.Add("properties", "email,firstname,lastname,company,persona")
	if after != "" {
		params.Add("after", after)
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/contacts?%s", c.config.HubSpot.BaseURL, params.Encode())

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
		return nil, fmt.Errorf("erro da API de contatos do HubSpot: status %d", resp.StatusCode)
	}

	var response hubspotdomain.ContactsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	return &response, nil
}
