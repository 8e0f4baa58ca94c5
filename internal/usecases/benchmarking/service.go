package benchmarking

import (
	"fmt"

	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/pkg/utils"
)

type Comparator interface {
	Compare(snapshot *domain.PerformanceSnapshot) *domain.BenchmarkVerdict
	CompareCampaign(campaignID string) ([]*domain.BenchmarkVerdict, error)
}

type Service struct {
	cfg                *config.Config
	snapshotRepository repository.SnapshotRepository
}

func NewService(cfg *config.Config, snapshotRepo repository.SnapshotRepository) Comparator {
	return &Service{
		cfg:                cfg,
		snapshotRepository: snapshotRepo,
	}
}

// Compare classifica cada taxa do snapshot contra o benchmark de mercado.
// Determinístico e sem efeitos colaterais: o mesmo snapshot produz sempre o
// mesmo veredito.
func (s *Service) Compare(snapshot *domain.PerformanceSnapshot) *domain.BenchmarkVerdict {
	benchmarks := s.cfg.Benchmarks

	openRate := s.classify(snapshot.OpenRate, benchmarks.OpenRate, false)
	clickRate := s.classify(snapshot.ClickRate, benchmarks.ClickRate, false)
	// Para descadastro a escala é invertida: taxa baixa é bom resultado
	unsubscribeRate := s.classify(snapshot.UnsubscribeRate, benchmarks.UnsubscribeRate, true)

	// Agregação pessimista: uma métrica fraca puxa o veredito geral
	overall := openRate.Category.
		Worse(clickRate.Category).
		Worse(unsubscribeRate.Category)

	return &domain.BenchmarkVerdict{
		CampaignID:      snapshot.CampaignID,
		Persona:         snapshot.Persona,
		OpenRate:        openRate,
		ClickRate:       clickRate,
		UnsubscribeRate: unsubscribeRate,
		Overall:         overall,
	}
}

// CompareCampaign gera um veredito por persona usando o snapshot mais
// recente de cada uma.
func (s *Service) CompareCampaign(campaignID string) ([]*domain.BenchmarkVerdict, error) {
	snapshots, err := s.snapshotRepository.ListSnapshotsByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshots da campanha: %w", err)
	}

	// Snapshots chegam em ordem cronológica crescente; o último de cada
	// persona é o vigente
	latest := make(map[domain.Persona]*domain.PerformanceSnapshot)
	for _, snapshot := range snapshots {
		latest[snapshot.Persona] = snapshot
	}

	verdicts := make([]*domain.BenchmarkVerdict, 0, len(latest))
	for _, persona := range domain.Personas {
		snapshot, ok := latest[persona]
		if !ok {
			continue
		}
		verdicts = append(verdicts, s.Compare(snapshot))
	}

	return verdicts, nil
}

func (s *Service) classify(actual, benchmark float64, inverted bool) domain.MetricComparison {
	tolerance := benchmark * s.cfg.Benchmarks.Tolerance

	category := domain.CategoryAt
	switch {
	case actual > benchmark+tolerance:
		category = domain.CategoryAbove
	case actual < benchmark-tolerance:
		category = domain.CategoryBelow
	}

	if inverted {
		switch category {
		case domain.CategoryAbove:
			category = domain.CategoryBelow
		case domain.CategoryBelow:
			category = domain.CategoryAbove
		}
	}

	return domain.MetricComparison{
		Actual:    actual,
		Benchmark: benchmark,
		Delta:     utils.RoundWithFourDecimalPlace(actual - benchmark),
		Category:  category,
	}
}
