package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/novamind/content-pipeline-api/internal/api/handler"
	"github.com/novamind/content-pipeline-api/internal/api/handler/router"
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
	"github.com/novamind/content-pipeline-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	generator generating.Generator,
	campaignManager campaigning.Manager,
	simulator simulating.Simulator,
	comparator benchmarking.Comparator,
	analyzer trending.Analyzer,
	insighter insighting.Insighter,
	collector collecting.Collector,
	exporter exporting.Exporter,
	authenticator authenticating.Authenticator,
	performanceSyncService *scheduler.PerformanceSyncService,
) (*Server, error) {
	// Inicializar o struct com os serviços de cron jobs
	cronServices := handler.CronJobServices{
		PerformanceSyncService: performanceSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Contents(generator)...),
		router.WithRoutes(handler.Campaigns(campaignManager, simulator)...),
		router.WithRoutes(handler.Analysis(insighter, comparator, analyzer, collector)...),
		router.WithRoutes(handler.Contacts(collector)...),
		router.WithRoutes(handler.Exports(exporter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
