package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	openaidomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/domain"
	"github.com/sirupsen/logrus"
)

func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, request *openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error) {
	url := fmt.Sprintf("%s/chat/completions", c.config.OpenAI.BaseURL)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.OpenAI.APIKey))

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
		var errResponse openaidomain.ErrorResponse
		if err := json.Unmarshal(body, &errResponse); err == nil && errResponse.Error.Message != "" {
			return nil, fmt.Errorf("erro da API de chat completions (%d): %s", resp.StatusCode, errResponse.Error.Message)
		}
		return nil, fmt.Errorf("erro da API de chat completions: status %d", resp.StatusCode)
	}

	var response openaidomain.ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("resposta da API sem choices")
	}

	return &response, nil
}
