package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/collecting"
	"github.com/novamind/content-pipeline-api/internal/usecases/insighting"
	"github.com/sirupsen/logrus"
)

// PerformanceSyncConfig representa a configuração do agendador de coleta de métricas
type PerformanceSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// PerformanceSyncService agenda a coleta de métricas das campanhas enviadas e
// a geração dos insights correspondentes
type PerformanceSyncService struct {
	scheduler           *gocron.Scheduler
	config              PerformanceSyncConfig
	appConfig           *config.Config
	collector           collecting.Collector
	insighter           insighting.Insighter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewPerformanceSyncService cria uma nova instância do serviço de sincronização
func NewPerformanceSyncService(
	collector collecting.Collector,
	insighter insighting.Insighter,
	appConfig *config.Config,
) *PerformanceSyncService {
	// Criar a configuração com base na config global
	syncConfig := PerformanceSyncConfig{
		CronSchedule:        appConfig.PerformanceSync.CronSchedule,
		RequestDelaySeconds: appConfig.PerformanceSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.PerformanceSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.PerformanceSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de coleta de métricas carregada")

	return &PerformanceSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		collector:   collector,
		insighter:   insighter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *PerformanceSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Coleta agendada de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de coleta de métricas de campanha")

	// Agendar a coleta de métricas
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncCampaignPerformance(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar coleta de métricas de campanha: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de coleta de métricas de campanha")
		s.scheduler.Stop()
	}()

	return nil
}

// syncCampaignPerformance coleta as métricas de todas as campanhas enviadas,
// sincroniza os contatos e gera os insights das campanhas analisadas
func (s *PerformanceSyncService) syncCampaignPerformance(ctx context.Context) {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Coleta de métricas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando coleta de métricas das campanhas enviadas")

	// Atualizar a base de contatos antes de calcular denominadores
	if _, err := s.collector.SyncContacts(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao sincronizar contatos do CRM")
	}

	collected, err := s.collector.CollectPending(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao coletar métricas das campanhas pendentes")
		return
	}

	if collected > 0 {
		s.generatePendingInsights(ctx)
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"collected": collected,
		"duration":  time.Since(startTime).String(),
	}).Info("Coleta de métricas de campanha concluída")
}

// generatePendingInsights gera o insight das campanhas analisadas que ainda
// não possuem registro
func (s *PerformanceSyncService) generatePendingInsights(ctx context.Context) {
	status := domain.CampaignStatusAnalyzed
	campaigns, err := s.insighter.ListCampaignsWithoutInsight(status)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar campanhas sem insight")
		return
	}

	for _, campaign := range campaigns {
		if _, err := s.insighter.Generate(ctx, campaign.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_id": campaign.ID,
				"error":       err.Error(),
			}).Error("Erro ao gerar insight da campanha")
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}
}

// TriggerManualSync inicia manualmente uma coleta de métricas
func (s *PerformanceSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Coleta de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando coleta manual de métricas de campanha")
	go s.syncCampaignPerformance(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *PerformanceSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"retention_policy":       "histórico de snapshots mantido permanentemente",
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
