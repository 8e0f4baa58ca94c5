package insighting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/novamind/content-pipeline-api/infrastructure/integrator/openai"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/benchmarking"
	"github.com/novamind/content-pipeline-api/internal/usecases/trending"
	"github.com/sirupsen/logrus"
)

type Insighter interface {
	Generate(ctx context.Context, campaignID string) (*domain.InsightRecord, error)
	GetLatest(campaignID string) (*domain.InsightRecord, error)
	RunAnalysis(ctx context.Context, campaignID string) (*domain.AnalysisReport, error)
	ListCampaignsWithoutInsight(status domain.CampaignStatus) ([]*domain.Campaign, error)
}

type Service struct {
	cfg                *config.Config
	campaignRepository repository.CampaignRepository
	snapshotRepository repository.SnapshotRepository
	insightRepository  repository.InsightRepository
	comparator         benchmarking.Comparator
	analyzer           trending.Analyzer
	textGenerator      openai.TextGenerator
}

func NewService(
	cfg *config.Config,
	campaignRepo repository.CampaignRepository,
	snapshotRepo repository.SnapshotRepository,
	insightRepo repository.InsightRepository,
	comparator benchmarking.Comparator,
	analyzer trending.Analyzer,
	textGenerator openai.TextGenerator,
) Insighter {
	return &Service{
		cfg:                cfg,
		campaignRepository: campaignRepo,
		snapshotRepository: snapshotRepo,
		insightRepository:  insightRepo,
		comparator:         comparator,
		analyzer:           analyzer,
		textGenerator:      textGenerator,
	}
}

// Generate monta o resumo numérico da campanha, delega a narrativa ao gerador
// de texto e persiste o registro. Falha do gerador nunca é fatal: o texto cai
// no template determinístico e o registro é marcado como fallback.
func (s *Service) Generate(ctx context.Context, campaignID string) (*domain.InsightRecord, error) {
	summary, _, _, err := s.buildSummary(campaignID)
	if err != nil {
		return nil, err
	}

	fallback := false
	text, err := s.textGenerator.GenerateInsight(ctx, summary)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Warn("insights: text generator unavailable, using deterministic fallback")

		text = fallbackInsight(summary)
		fallback = true
	}

	record := &domain.InsightRecord{
		CampaignID:      campaignID,
		InsightText:     text,
		Recommendations: s.buildRecommendations(summary),
		Fallback:        fallback,
	}

	saved, err := s.insightRepository.SaveInsight(record)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"insight_id":  saved.ID,
		"fallback":    fallback,
	}).Info("insights: insight record created")

	return saved, nil
}

// GetLatest retorna o insight mais recente da campanha, ou nil se não houver
func (s *Service) GetLatest(campaignID string) (*domain.InsightRecord, error) {
	return s.insightRepository.GetLatestInsightByCampaign(campaignID)
}

// ListCampaignsWithoutInsight retorna as campanhas no status informado que
// ainda não possuem nenhum registro de insight
func (s *Service) ListCampaignsWithoutInsight(status domain.CampaignStatus) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepository.ListCampaigns(&status)
	if err != nil {
		return nil, err
	}

	pending := make([]*domain.Campaign, 0)
	for _, campaign := range campaigns {
		insight, err := s.insightRepository.GetLatestInsightByCampaign(campaign.ID)
		if err != nil {
			return nil, err
		}

		if insight == nil {
			pending = append(pending, campaign)
		}
	}

	return pending, nil
}

// RunAnalysis executa a análise completa da campanha: snapshots, vereditos por
// persona, tendências e um novo insight.
func (s *Service) RunAnalysis(ctx context.Context, campaignID string) (*domain.AnalysisReport, error) {
	_, verdicts, trends, err := s.buildSummary(campaignID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepository.ListSnapshotsByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	insight, err := s.Generate(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	return &domain.AnalysisReport{
		Campaign:  campaign,
		Snapshots: snapshots,
		Verdicts:  verdicts,
		Trends:    trends,
		Insight:   insight,
	}, nil
}

// buildSummary reúne o snapshot vigente de cada persona, o veredito de
// benchmark e a tendência histórica no resumo numérico entregue ao gerador.
func (s *Service) buildSummary(campaignID string) (*domain.CampaignNumericSummary, []*domain.BenchmarkVerdict, []*domain.TrendResult, error) {
	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, nil, nil, err
	}

	if campaign == nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	snapshots, err := s.snapshotRepository.ListSnapshotsByCampaign(campaignID)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(snapshots) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrNoSnapshots, campaignID)
	}

	latest := make(map[domain.Persona]*domain.PerformanceSnapshot)
	for _, snapshot := range snapshots {
		latest[snapshot.Persona] = snapshot
	}

	summary := &domain.CampaignNumericSummary{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
	}

	verdicts := make([]*domain.BenchmarkVerdict, 0, len(latest))
	trends := make([]*domain.TrendResult, 0, len(latest))

	for _, persona := range domain.Personas {
		snapshot, ok := latest[persona]
		if !ok {
			continue
		}

		verdict := s.comparator.Compare(snapshot)
		verdicts = append(verdicts, verdict)

		trend, err := s.analyzer.AnalyzePersona(persona)
		if err != nil && !errors.Is(err, trending.ErrInsufficientData) {
			return nil, nil, nil, err
		}
		trends = append(trends, trend)

		summary.Personas = append(summary.Personas, domain.PersonaSummary{
			Persona:         persona,
			OpenRate:        snapshot.OpenRate,
			ClickRate:       snapshot.ClickRate,
			UnsubscribeRate: snapshot.UnsubscribeRate,
			EngagementScore: snapshot.EngagementScore(),
			Overall:         verdict.Overall,
			Trend:           trend.Direction,
		})
	}

	return summary, verdicts, trends, nil
}

// buildRecommendations aplica regras determinísticas sobre o resumo numérico.
// Nenhum texto gerado externamente entra aqui.
func (s *Service) buildRecommendations(summary *domain.CampaignNumericSummary) []string {
	recommendations := make([]string, 0)
	benchmarks := s.cfg.Benchmarks

	for _, p := range summary.Personas {
		if p.OpenRate < benchmarks.OpenRate {
			recommendations = append(recommendations,
				fmt.Sprintf("Testar novas linhas de assunto para a persona %s (open rate %.1f%% abaixo do mercado)", p.Persona, p.OpenRate*100))
		}

		if p.ClickRate < benchmarks.ClickRate {
			recommendations = append(recommendations,
				fmt.Sprintf("Revisar os CTAs do conteúdo para a persona %s (click rate %.1f%%)", p.Persona, p.ClickRate*100))
		}

		if p.UnsubscribeRate > benchmarks.UnsubscribeRate {
			recommendations = append(recommendations,
				fmt.Sprintf("Reduzir a frequência de envio para a persona %s (descadastro em %.2f%%)", p.Persona, p.UnsubscribeRate*100))
		}

		if p.Trend == domain.TrendDeclining {
			recommendations = append(recommendations,
				fmt.Sprintf("Investigar a queda de engajamento da persona %s nas últimas campanhas", p.Persona))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Manter a estratégia atual de conteúdo e segmentação")
	}

	return recommendations
}

// fallbackInsight monta o texto determinístico usado quando o gerador externo
// está indisponível. Preserva todas as métricas, sem elaboração narrativa.
func fallbackInsight(summary *domain.CampaignNumericSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Resumo automático da campanha %q:", summary.CampaignName)

	for _, p := range summary.Personas {
		fmt.Fprintf(
			&sb,
			" %s: open rate %.1f%%, click rate %.1f%%, descadastro %.2f%%, engajamento %.1f/100, veredito %q, tendência %q.",
			p.Persona,
			p.OpenRate*100,
			p.ClickRate*100,
			p.UnsubscribeRate*100,
			p.EngagementScore,
			p.Overall,
			p.Trend,
		)
	}

	return sb.String()
}
