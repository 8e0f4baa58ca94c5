package main

import (
	"context"
	"math/rand"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/novamind/content-pipeline-api/infrastructure/database/postgres"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/hubspot"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/openai"
	"github.com/novamind/content-pipeline-api/infrastructure/integrator/openai/openaiclient"
	"github.com/novamind/content-pipeline-api/infrastructure/repository"
	"github.com/novamind/content-pipeline-api/internal/api"
	"github.com/novamind/content-pipeline-api/internal/config"
	"github.com/novamind/content-pipeline-api/internal/scheduler"
	"github.com/novamind/content-pipeline-api/internal/usecases/authenticating"
	"github.com/novamind/content-pipeline-api/internal/usecases/benchmarking"
	"github.com/novamind/content-pipeline-api/internal/usecases/campaigning"
	"github.com/novamind/content-pipeline-api/internal/usecases/collecting"
	"github.com/novamind/content-pipeline-api/internal/usecases/exporting"
	"github.com/novamind/content-pipeline-api/internal/usecases/generating"
	"github.com/novamind/content-pipeline-api/internal/usecases/insighting"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	"github.com/novamind/content-pipeline-api/internal/usecases/trending"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	contentRepo := repository.NewContentRepository(pgConn)
	newsletterRepo := repository.NewNewsletterRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	contactRepo := repository.NewContactRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Integradores externos: caem no modo mock quando não há API key
	crmIntegrator := hubspot.NewFromConfig(cfg)
	textGenerator := openai.NewFromConfig(cfg)

	var generationClient openaiclient.Client
	if !cfg.OpenAI.MockMode {
		generationClient = openaiclient.NewClient(cfg)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	generator := generating.NewService(cfg, contentRepo, newsletterRepo, generationClient)
	campaignManager := campaigning.NewService(campaignRepo, contentRepo)
	simulator := simulating.NewService(cfg, campaignRepo, contactRepo, snapshotRepo, rng)
	comparator := benchmarking.NewService(cfg, snapshotRepo)
	analyzer := trending.NewService(cfg, snapshotRepo)
	insighter := insighting.NewService(cfg, campaignRepo, snapshotRepo, insightRepo, comparator, analyzer, textGenerator)
	collector := collecting.NewService(cfg, campaignRepo, contactRepo, crmIntegrator, simulator)
	exporter := exporting.NewService(contentRepo, newsletterRepo, campaignRepo, contactRepo, snapshotRepo, insightRepo)

	// Inicializa o agendador de coleta de métricas
	performanceSyncService := scheduler.NewPerformanceSyncService(collector, insighter, cfg)

	if err := performanceSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de coleta de métricas de campanha")
	} else {
		logrus.Info("Agendador de coleta de métricas de campanha iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		generator,
		campaignManager,
		simulator,
		comparator,
		analyzer,
		insighter,
		collector,
		exporter,
		authenticator,
		performanceSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
