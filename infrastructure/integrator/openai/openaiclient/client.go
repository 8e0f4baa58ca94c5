package openaiclient

import (
	"context"
	"net/http"

	openaidomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/domain"
	"github.com/novamind/content-pipeline-api/internal/config"
)

type Client interface {
	CreateChatCompletion(ctx context.Context, request *openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: cfg.OpenAI.RequestTimeout,
		},
		config: cfg,
	}
}
