package openai

import (
	"context"
	"fmt"
	"strings"

	openaidomain "github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/domain"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/openaiclient"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// TextGenerator produz o texto narrativo de insight a partir do resumo
// numérico de uma campanha. Implementações não fazem retry: uma única
// tentativa, limitada pelo timeout configurado.
type TextGenerator interface {
	GenerateInsight(ctx context.Context, summary *domain.CampaignNumericSummary) (string, error)
}

type OpenAIIntegrator struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) *OpenAIIntegrator {
	return &OpenAIIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// NewFromConfig retorna o integrador real ou o gerador mock, conforme a
// configuração. Sem API key o modo mock é forçado no carregamento da config.
func NewFromConfig(cfg *config.Config) TextGenerator {
	if cfg.OpenAI.MockMode {
		logrus.Info("textgen: mock mode enabled, skipping OpenAI client")
		return NewMockGenerator()
	}

	return New(cfg, openaiclient.NewClient(cfg))
}

func (s *OpenAIIntegrator) GenerateInsight(ctx context.Context, summary *domain.CampaignNumericSummary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpenAI.RequestTimeout)
	defer cancel()

	request := &openaidomain.ChatCompletionRequest{
		Model: s.cfg.OpenAI.Model,
		Messages: []openaidomain.ChatMessage{
			{
				Role:    "system",
				Content: "Você é um analista de marketing por e-mail. Escreva um parágrafo curto e objetivo interpretando as métricas da campanha, em linguagem de negócio, sem inventar números.",
			},
			{
				Role:    "user",
				Content: buildPrompt(summary),
			},
		},
		Temperature: 0.7,
		MaxTokens:   400,
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("textgen: request payload %s", utils.PrettyJson(request))
	}

	resp, err := s.Client.CreateChatCompletion(ctx, request)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": summary.CampaignID,
			"error":       err.Error(),
		}).Error("textgen: failed to generate insight text")
		return "", err
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("resposta vazia do gerador de texto")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":  summary.CampaignID,
		"total_tokens": resp.Usage.TotalTokens,
	}).Debug("textgen: successfully generated insight text")

	return text, nil
}

func buildPrompt(summary *domain.CampaignNumericSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Campanha: %s\n", summary.CampaignName)
	fmt.Fprintf(&sb, "Métricas por persona:\n")

	for _, p := range summary.Personas {
		fmt.Fprintf(
			&sb,
			"- %s: open rate %.2f%%, click rate %.2f%%, unsubscribe rate %.2f%%, engajamento %.1f/100, vs benchmark: %s, tendência: %s\n",
			p.Persona,
			p.OpenRate*100,
			p.ClickRate*100,
			p.UnsubscribeRate*100,
			p.EngagementScore,
			p.Overall,
			p.Trend,
		)
	}

	sb.WriteString("\nResuma o desempenho geral e destaque a persona mais forte e a mais fraca.")

	return sb.String()
}
