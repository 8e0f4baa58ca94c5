package trending

import (
	"fmt"
	"math"

	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

const minSamples = 2

type Analyzer interface {
	AnalyzePersona(persona domain.Persona) (*domain.TrendResult, error)
	AnalyzeCampaignLine(campaignID string, persona domain.Persona) (*domain.TrendResult, error)
}

type Service struct {
	cfg                *config.Config
	snapshotRepository repository.SnapshotRepository
}

func NewService(cfg *config.Config, snapshotRepo repository.SnapshotRepository) Analyzer {
	return &Service{
		cfg:                cfg,
		snapshotRepository: snapshotRepo,
	}
}

// AnalyzePersona calcula a tendência sobre o histórico global da persona,
// limitado às amostras mais recentes da janela configurada.
func (s *Service) AnalyzePersona(persona domain.Persona) (*domain.TrendResult, error) {
	snapshots, err := s.snapshotRepository.ListRecentSnapshotsByPersona(persona, s.cfg.Trend.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico da persona: %w", err)
	}

	result, err := s.analyze(snapshots)
	result.Persona = persona

	return result, err
}

// AnalyzeCampaignLine calcula a tendência sobre a linha de snapshots de uma
// persona dentro de uma única campanha.
func (s *Service) AnalyzeCampaignLine(campaignID string, persona domain.Persona) (*domain.TrendResult, error) {
	snapshots, err := s.snapshotRepository.ListSnapshotsByCampaignAndPersona(campaignID, persona)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshots da campanha: %w", err)
	}

	if window := s.cfg.Trend.WindowSize; len(snapshots) > window {
		snapshots = snapshots[len(snapshots)-window:]
	}

	result, err := s.analyze(snapshots)
	result.Persona = persona

	return result, err
}

// analyze compara a amostra mais antiga com a mais recente da janela.
// Variações menores que o limiar de ruído contam como estáveis; quando as
// taxas de abertura e clique divergem, a direção é "mixed".
func (s *Service) analyze(snapshots []*domain.PerformanceSnapshot) (*domain.TrendResult, error) {
	if len(snapshots) < minSamples {
		return &domain.TrendResult{
			Direction:   domain.TrendUnknown,
			SamplesUsed: len(snapshots),
		}, ErrInsufficientData
	}

	first := snapshots[0]
	last := snapshots[len(snapshots)-1]

	openDelta := utils.RoundWithFourDecimalPlace(last.OpenRate - first.OpenRate)
	clickDelta := utils.RoundWithFourDecimalPlace(last.ClickRate - first.ClickRate)

	openSignal := signal(openDelta, s.cfg.Trend.NoiseThreshold)
	clickSignal := signal(clickDelta, s.cfg.Trend.NoiseThreshold)

	direction := domain.TrendMixed
	switch {
	case openSignal == 0 && clickSignal == 0:
		direction = domain.TrendStable
	case openSignal >= 0 && clickSignal >= 0:
		direction = domain.TrendImproving
	case openSignal <= 0 && clickSignal <= 0:
		direction = domain.TrendDeclining
	}

	return &domain.TrendResult{
		Direction:      direction,
		Magnitude:      utils.RoundWithFourDecimalPlace(math.Max(math.Abs(openDelta), math.Abs(clickDelta))),
		OpenRateDelta:  openDelta,
		ClickRateDelta: clickDelta,
		SamplesUsed:    len(snapshots),
	}, nil
}

// signal reduz um delta a -1, 0 ou +1, tratando o limiar de ruído como zero
func signal(delta, noiseThreshold float64) int {
	switch {
	case delta > noiseThreshold:
		return 1
	case delta < -noiseThreshold:
		return -1
	}
	return 0
}
