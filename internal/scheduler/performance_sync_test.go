package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	collectingmocks "github.com/novamind/content-pipeline-api/internal/usecases/collecting/mocks"
	insightingmocks "github.com/novamind/content-pipeline-api/internal/usecases/insighting/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newSyncService(t *testing.T) (*PerformanceSyncService, *collectingmocks.MockCollector, *insightingmocks.MockInsighter) {
	ctrl := gomock.NewController(t)

	mockCollector := collectingmocks.NewMockCollector(ctrl)
	mockInsighter := insightingmocks.NewMockInsighter(ctrl)

	service := &PerformanceSyncService{
		config: PerformanceSyncConfig{
			CronSchedule:        "0 */6 * * *",
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   1,
			SyncEnabled:         true,
		},
		appConfig: &config.Config{},
		collector: mockCollector,
		insighter: mockInsighter,
	}

	return service, mockCollector, mockInsighter
}

func TestPerformanceSyncService_syncCampaignPerformance(t *testing.T) {
	tests := []struct {
		name  string
		setup func(collector *collectingmocks.MockCollector, insighter *insightingmocks.MockInsighter)
	}{
		{
			name: "Campanhas coletadas geram os insights pendentes",
			setup: func(collector *collectingmocks.MockCollector, insighter *insightingmocks.MockInsighter) {
				collector.EXPECT().SyncContacts(gomock.Any()).Return(5, nil)
				collector.EXPECT().CollectPending(gomock.Any()).Return(2, nil)

				insighter.EXPECT().
					ListCampaignsWithoutInsight(domain.CampaignStatusAnalyzed).
					Return([]*domain.Campaign{
						{ID: "CMP001"},
						{ID: "CMP002"},
					}, nil)

				insighter.EXPECT().
					Generate(gomock.Any(), "CMP001").
					Return(&domain.InsightRecord{ID: "INS001"}, nil)

				// Falha em uma campanha não interrompe as demais
				insighter.EXPECT().
					Generate(gomock.Any(), "CMP002").
					Return(nil, errors.New("gerador indisponível"))
			},
		},
		{
			name: "Sem campanhas pendentes nenhum insight é gerado",
			setup: func(collector *collectingmocks.MockCollector, insighter *insightingmocks.MockInsighter) {
				collector.EXPECT().SyncContacts(gomock.Any()).Return(0, nil)
				collector.EXPECT().CollectPending(gomock.Any()).Return(0, nil)
			},
		},
		{
			name: "Falha na sincronização de contatos não impede a coleta",
			setup: func(collector *collectingmocks.MockCollector, insighter *insightingmocks.MockInsighter) {
				collector.EXPECT().SyncContacts(gomock.Any()).Return(0, errors.New("CRM fora do ar"))
				collector.EXPECT().CollectPending(gomock.Any()).Return(0, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, collector, insighter := newSyncService(t)
			tt.setup(collector, insighter)

			service.syncCampaignPerformance(context.Background())

			assert.False(t, service.syncRunning)

			status := service.GetStatus()
			assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
			assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
		})
	}
}

func TestPerformanceSyncService_syncSkipsWhenAlreadyRunning(t *testing.T) {
	service, _, _ := newSyncService(t)
	service.syncRunning = true

	// Nenhuma expectativa nos mocks: a execução deve retornar imediatamente
	service.syncCampaignPerformance(context.Background())

	assert.True(t, service.syncRunning)
}

func TestPerformanceSyncService_StartDisabledByConfig(t *testing.T) {
	service, _, _ := newSyncService(t)
	service.config.SyncEnabled = false

	assert.NoError(t, service.Start(context.Background()))
}

func TestPerformanceSyncService_GetStatus(t *testing.T) {
	service, _, _ := newSyncService(t)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 */6 * * *", status["sync_cron"])
	assert.Contains(t, status, "last_sync_started_at")
	assert.Contains(t, status, "last_sync_completed_at")
}
