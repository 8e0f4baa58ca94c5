package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/benchmarking"
	"github.com/novamind/content-pipeline-api/internal/usecases/collecting"
	"github.com/novamind/content-pipeline-api/internal/usecases/insighting"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	"github.com/novamind/content-pipeline-api/internal/usecases/trending"
	"github.com/novamind/content-pipeline-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunAnalysis executa a análise completa da campanha: benchmarks por persona,
// tendências históricas e um novo insight persistido
func RunAnalysis(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAnalysis")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		report, err := service.RunAnalysis(r.Context(), campaignID)
		if err != nil {
			handleInsightError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// GenerateInsight gera e persiste um novo insight para a campanha
func GenerateInsight(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateInsight")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		insight, err := service.Generate(r.Context(), campaignID)
		if err != nil {
			handleInsightError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(insight)
	}
}

// GetLatestInsight retorna o insight mais recente da campanha
func GetLatestInsight(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		insight, err := service.GetLatest(campaignID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar insight", nil)
			return
		}

		if insight == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha ainda não possui insight", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insight)
	}
}

// GetCampaignBenchmark compara o snapshot vigente de cada persona contra os
// benchmarks de mercado
func GetCampaignBenchmark(service benchmarking.Comparator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		verdicts, err := service.CompareCampaign(campaignID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao comparar com benchmarks", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(verdicts)
	}
}

// GetPersonaTrend analisa a tendência histórica de engajamento de uma persona.
// Com menos de duas amostras a direção retorna como "unknown".
func GetPersonaTrend(service trending.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := httprouter.ParamsFromContext(r.Context()).ByName("persona")

		persona, err := domain.ParsePersona(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Persona inválida", nil)
			return
		}

		trend, err := service.AnalyzePersona(persona)
		if err != nil && !errors.Is(err, trending.ErrInsufficientData) {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao analisar tendência", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(trend)
	}
}

// CollectCampaignMetrics coleta os contadores reais da campanha no CRM e
// registra os snapshots correspondentes
func CollectCampaignMetrics(service collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CollectCampaignMetrics")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		snapshots, err := service.CollectCampaign(r.Context(), campaignID)
		if err != nil {
			if errors.Is(err, collecting.ErrCampaignNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)
				return
			}

			if errors.Is(err, simulating.ErrInvalidTransition) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, "Campanha ainda não foi enviada", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao coletar métricas da campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshots)
	}
}

func handleInsightError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, insighting.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, insighting.ErrNoSnapshots):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campanha ainda não possui snapshots de performance", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar análise da campanha", nil)
	}
}
