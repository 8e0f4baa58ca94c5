package benchmarking

import (
	"testing"

	"github.com/novamind/content-pipeline-api/infrastructure/repository/mocks"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Benchmarks: config.Benchmarks{
			OpenRate:        0.21,
			ClickRate:       0.10,
			UnsubscribeRate: 0.005,
			Tolerance:       0.10,
		},
	}
}

func TestService_Compare(t *testing.T) {
	service := &Service{cfg: testConfig()}

	tests := []struct {
		name            string
		snapshot        *domain.PerformanceSnapshot
		expectedOpen    domain.BenchmarkCategory
		expectedClick   domain.BenchmarkCategory
		expectedUnsub   domain.BenchmarkCategory
		expectedOverall domain.BenchmarkCategory
	}{
		{
			name: "Abertura forte com clique dentro da tolerância",
			snapshot: &domain.PerformanceSnapshot{
				CampaignID:      "CMP001",
				Persona:         domain.PersonaFounders,
				OpenRate:        0.25,
				ClickRate:       0.09,
				UnsubscribeRate: 0.005,
			},
			expectedOpen:    domain.CategoryAbove,
			expectedClick:   domain.CategoryAt,
			expectedUnsub:   domain.CategoryAt,
			expectedOverall: domain.CategoryAt,
		},
		{
			name: "Todas as métricas acima do mercado",
			snapshot: &domain.PerformanceSnapshot{
				OpenRate:        0.30,
				ClickRate:       0.15,
				UnsubscribeRate: 0.001, // taxa baixa de descadastro é resultado bom
			},
			expectedOpen:    domain.CategoryAbove,
			expectedClick:   domain.CategoryAbove,
			expectedUnsub:   domain.CategoryAbove,
			expectedOverall: domain.CategoryAbove,
		},
		{
			name: "Descadastro alto derruba o veredito geral",
			snapshot: &domain.PerformanceSnapshot{
				OpenRate:        0.30,
				ClickRate:       0.15,
				UnsubscribeRate: 0.02,
			},
			expectedOpen:    domain.CategoryAbove,
			expectedClick:   domain.CategoryAbove,
			expectedUnsub:   domain.CategoryBelow,
			expectedOverall: domain.CategoryBelow,
		},
		{
			name: "Todas as métricas fracas",
			snapshot: &domain.PerformanceSnapshot{
				OpenRate:        0.10,
				ClickRate:       0.04,
				UnsubscribeRate: 0.02,
			},
			expectedOpen:    domain.CategoryBelow,
			expectedClick:   domain.CategoryBelow,
			expectedUnsub:   domain.CategoryBelow,
			expectedOverall: domain.CategoryBelow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := service.Compare(tt.snapshot)

			assert.Equal(t, tt.expectedOpen, verdict.OpenRate.Category)
			assert.Equal(t, tt.expectedClick, verdict.ClickRate.Category)
			assert.Equal(t, tt.expectedUnsub, verdict.UnsubscribeRate.Category)
			assert.Equal(t, tt.expectedOverall, verdict.Overall)
		})
	}
}

func TestService_CompareIsDeterministic(t *testing.T) {
	service := &Service{cfg: testConfig()}

	snapshot := &domain.PerformanceSnapshot{
		CampaignID:      "CMP001",
		Persona:         domain.PersonaCreatives,
		OpenRate:        0.27,
		ClickRate:       0.12,
		UnsubscribeRate: 0.004,
	}

	first := service.Compare(snapshot)
	second := service.Compare(snapshot)

	assert.Equal(t, first, second)
}

func TestService_CompareCampaignUsesLatestSnapshotPerPersona(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

	service := &Service{cfg: testConfig(), snapshotRepository: snapshotRepo}

	// Duas medições da mesma persona: apenas a mais recente conta
	snapshotRepo.EXPECT().
		ListSnapshotsByCampaign("CMP001").
		Return([]*domain.PerformanceSnapshot{
			{CampaignID: "CMP001", Persona: domain.PersonaFounders, OpenRate: 0.10, ClickRate: 0.04, UnsubscribeRate: 0.02},
			{CampaignID: "CMP001", Persona: domain.PersonaFounders, OpenRate: 0.30, ClickRate: 0.15, UnsubscribeRate: 0.001},
		}, nil)

	verdicts, err := service.CompareCampaign("CMP001")

	assert.NoError(t, err)
	assert.Len(t, verdicts, 1)
	assert.Equal(t, domain.PersonaFounders, verdicts[0].Persona)
	assert.Equal(t, domain.CategoryAbove, verdicts[0].Overall)
}
