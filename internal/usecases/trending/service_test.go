package trending

import (
	"testing"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockSnapshotRepository) {
	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

	service := &Service{
		cfg: &config.Config{
			Trend: config.Trend{
				WindowSize:     10,
				NoiseThreshold: 0.01,
			},
		},
		snapshotRepository: snapshotRepo,
	}

	return service, snapshotRepo
}

func TestService_AnalyzePersonaRequiresTwoSamples(t *testing.T) {
	service, snapshotRepo := newTestService(t)

	snapshotRepo.EXPECT().
		ListRecentSnapshotsByPersona(domain.PersonaFounders, 10).
		Return([]*domain.PerformanceSnapshot{
			{Persona: domain.PersonaFounders, OpenRate: 0.25},
		}, nil)

	result, err := service.AnalyzePersona(domain.PersonaFounders)

	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, domain.TrendUnknown, result.Direction)
	assert.Equal(t, 1, result.SamplesUsed)
	assert.Equal(t, domain.PersonaFounders, result.Persona)
}

func TestService_AnalyzePersonaDirections(t *testing.T) {
	tests := []struct {
		name              string
		snapshots         []*domain.PerformanceSnapshot
		expectedDirection domain.TrendDirection
		expectedMagnitude float64
	}{
		{
			name: "Abertura e clique subindo indicam melhora",
			snapshots: []*domain.PerformanceSnapshot{
				{OpenRate: 0.20, ClickRate: 0.08},
				{OpenRate: 0.24, ClickRate: 0.10},
				{OpenRate: 0.30, ClickRate: 0.12},
			},
			expectedDirection: domain.TrendImproving,
			expectedMagnitude: 0.10,
		},
		{
			name: "Abertura e clique caindo indicam queda",
			snapshots: []*domain.PerformanceSnapshot{
				{OpenRate: 0.30, ClickRate: 0.12},
				{OpenRate: 0.22, ClickRate: 0.09},
			},
			expectedDirection: domain.TrendDeclining,
			expectedMagnitude: 0.08,
		},
		{
			name: "Variação dentro do ruído conta como estável",
			snapshots: []*domain.PerformanceSnapshot{
				{OpenRate: 0.25, ClickRate: 0.10},
				{OpenRate: 0.255, ClickRate: 0.098},
			},
			expectedDirection: domain.TrendStable,
			expectedMagnitude: 0.005,
		},
		{
			name: "Métricas divergentes indicam tendência mista",
			snapshots: []*domain.PerformanceSnapshot{
				{OpenRate: 0.20, ClickRate: 0.12},
				{OpenRate: 0.28, ClickRate: 0.07},
			},
			expectedDirection: domain.TrendMixed,
			expectedMagnitude: 0.08,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, snapshotRepo := newTestService(t)

			snapshotRepo.EXPECT().
				ListRecentSnapshotsByPersona(domain.PersonaCreatives, 10).
				Return(tt.snapshots, nil)

			result, err := service.AnalyzePersona(domain.PersonaCreatives)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDirection, result.Direction)
			assert.Equal(t, tt.expectedMagnitude, result.Magnitude)
			assert.Equal(t, len(tt.snapshots), result.SamplesUsed)
		})
	}
}

func TestService_AnalyzeCampaignLineRespectsWindow(t *testing.T) {
	service, snapshotRepo := newTestService(t)
	service.cfg.Trend.WindowSize = 2

	// A primeira amostra fica fora da janela: a comparação é 0.25 → 0.30
	snapshotRepo.EXPECT().
		ListSnapshotsByCampaignAndPersona("CMP001", domain.PersonaOperations).
		Return([]*domain.PerformanceSnapshot{
			{OpenRate: 0.10, ClickRate: 0.02},
			{OpenRate: 0.25, ClickRate: 0.08},
			{OpenRate: 0.30, ClickRate: 0.10},
		}, nil)

	result, err := service.AnalyzeCampaignLine("CMP001", domain.PersonaOperations)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.SamplesUsed)
	assert.Equal(t, 0.05, result.OpenRateDelta)
	assert.Equal(t, domain.TrendImproving, result.Direction)
}
