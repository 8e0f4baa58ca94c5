package insighting

import (
	"context"
	"errors"
	"testing"

	openaimocks "github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/mocks"
	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/benchmarking"
	"github.com/novamind/content-pipeline-api/internal/usecases/trending"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type testFixture struct {
	service       *Service
	campaignRepo  *mocks.MockCampaignRepository
	snapshotRepo  *mocks.MockSnapshotRepository
	insightRepo   *mocks.MockInsightRepository
	textGenerator *openaimocks.MockTextGenerator
}

func newTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	insightRepo := mocks.NewMockInsightRepository(ctrl)
	textGenerator := openaimocks.NewMockTextGenerator(ctrl)

	cfg := &config.Config{
		Benchmarks: config.Benchmarks{
			OpenRate:        0.21,
			ClickRate:       0.10,
			UnsubscribeRate: 0.005,
			Tolerance:       0.10,
		},
		Trend: config.Trend{
			WindowSize:     10,
			NoiseThreshold: 0.01,
		},
	}

	service := &Service{
		cfg:                cfg,
		campaignRepository: campaignRepo,
		snapshotRepository: snapshotRepo,
		insightRepository:  insightRepo,
		comparator:         benchmarking.NewService(cfg, snapshotRepo),
		analyzer:           trending.NewService(cfg, snapshotRepo),
		textGenerator:      textGenerator,
	}

	return &testFixture{
		service:       service,
		campaignRepo:  campaignRepo,
		snapshotRepo:  snapshotRepo,
		insightRepo:   insightRepo,
		textGenerator: textGenerator,
	}
}

func (f *testFixture) expectCampaignWithSnapshots() {
	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001", Name: "Lançamento Q3"}, nil).
		AnyTimes()

	f.snapshotRepo.EXPECT().
		ListSnapshotsByCampaign("CMP001").
		Return([]*domain.PerformanceSnapshot{
			{
				CampaignID:      "CMP001",
				Persona:         domain.PersonaFounders,
				ContactsSent:    200,
				Opens:           50,
				Clicks:          18,
				OpenRate:        0.25,
				ClickRate:       0.09,
				UnsubscribeRate: 0.004,
			},
		}, nil).
		AnyTimes()

	// Histórico curto: tendência sai como desconhecida, sem abortar a análise
	f.snapshotRepo.EXPECT().
		ListRecentSnapshotsByPersona(gomock.Any(), 10).
		Return(nil, nil).
		AnyTimes()
}

func TestService_GenerateUsesGeneratedText(t *testing.T) {
	f := newTestFixture(t)
	f.expectCampaignWithSnapshots()

	f.textGenerator.EXPECT().
		GenerateInsight(gomock.Any(), gomock.Any()).
		Return("A campanha teve desempenho sólido entre founders.", nil)

	f.insightRepo.EXPECT().
		SaveInsight(gomock.Any()).
		DoAndReturn(func(record *domain.InsightRecord) (*domain.InsightRecord, error) {
			record.ID = "INS001"
			return record, nil
		})

	insight, err := f.service.Generate(context.Background(), "CMP001")

	assert.NoError(t, err)
	assert.Equal(t, "CMP001", insight.CampaignID)
	assert.Equal(t, "A campanha teve desempenho sólido entre founders.", insight.InsightText)
	assert.False(t, insight.Fallback)
	assert.NotEmpty(t, insight.Recommendations)
}

func TestService_GenerateFallsBackWhenGeneratorFails(t *testing.T) {
	f := newTestFixture(t)
	f.expectCampaignWithSnapshots()

	f.textGenerator.EXPECT().
		GenerateInsight(gomock.Any(), gomock.Any()).
		Return("", errors.New("timeout na API"))

	f.insightRepo.EXPECT().
		SaveInsight(gomock.Any()).
		DoAndReturn(func(record *domain.InsightRecord) (*domain.InsightRecord, error) {
			record.ID = "INS002"
			return record, nil
		})

	insight, err := f.service.Generate(context.Background(), "CMP001")

	// A falha do gerador nunca é fatal: o registro sai com texto determinístico
	assert.NoError(t, err)
	assert.True(t, insight.Fallback)
	assert.Contains(t, insight.InsightText, "Lançamento Q3")
	assert.Contains(t, insight.InsightText, "open rate")
}

func TestService_GenerateFailsWithoutSnapshots(t *testing.T) {
	f := newTestFixture(t)

	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP001").
		Return(&domain.Campaign{ID: "CMP001"}, nil)

	f.snapshotRepo.EXPECT().
		ListSnapshotsByCampaign("CMP001").
		Return(nil, nil)

	_, err := f.service.Generate(context.Background(), "CMP001")
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestService_GenerateFailsForUnknownCampaign(t *testing.T) {
	f := newTestFixture(t)

	f.campaignRepo.EXPECT().
		GetCampaignByID("CMP404").
		Return(nil, nil)

	_, err := f.service.Generate(context.Background(), "CMP404")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestService_BuildRecommendations(t *testing.T) {
	f := newTestFixture(t)

	tests := []struct {
		name     string
		summary  *domain.CampaignNumericSummary
		validate func(t *testing.T, recommendations []string)
	}{
		{
			name: "Métricas saudáveis produzem recomendação de manutenção",
			summary: &domain.CampaignNumericSummary{
				Personas: []domain.PersonaSummary{
					{Persona: domain.PersonaFounders, OpenRate: 0.25, ClickRate: 0.12, UnsubscribeRate: 0.003, Trend: domain.TrendImproving},
				},
			},
			validate: func(t *testing.T, recommendations []string) {
				assert.Len(t, recommendations, 1)
				assert.Contains(t, recommendations[0], "Manter a estratégia atual")
			},
		},
		{
			name: "Cada métrica fraca gera uma recomendação própria",
			summary: &domain.CampaignNumericSummary{
				Personas: []domain.PersonaSummary{
					{Persona: domain.PersonaOperations, OpenRate: 0.15, ClickRate: 0.05, UnsubscribeRate: 0.02, Trend: domain.TrendDeclining},
				},
			},
			validate: func(t *testing.T, recommendations []string) {
				assert.Len(t, recommendations, 4)
				assert.Contains(t, recommendations[0], "linhas de assunto")
				assert.Contains(t, recommendations[1], "CTAs")
				assert.Contains(t, recommendations[2], "frequência de envio")
				assert.Contains(t, recommendations[3], "queda de engajamento")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, f.service.buildRecommendations(tt.summary))
		})
	}
}

func TestService_ListCampaignsWithoutInsight(t *testing.T) {
	f := newTestFixture(t)

	status := domain.CampaignStatusAnalyzed
	f.campaignRepo.EXPECT().
		ListCampaigns(&status).
		Return([]*domain.Campaign{
			{ID: "CMP001"},
			{ID: "CMP002"},
		}, nil)

	f.insightRepo.EXPECT().
		GetLatestInsightByCampaign("CMP001").
		Return(&domain.InsightRecord{ID: "INS001", CampaignID: "CMP001"}, nil)

	f.insightRepo.EXPECT().
		GetLatestInsightByCampaign("CMP002").
		Return(nil, nil)

	pending, err := f.service.ListCampaignsWithoutInsight(status)

	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, "CMP002", pending[0].ID)
}
