package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/campaigning"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	"github.com/novamind/content-pipeline-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CreateCampaignRequest struct {
	ContentID string `json:"content_id"`
	Name      string `json:"name"`
}

type SimulateRequest struct {
	Persona      string `json:"persona"`
	ContactsSent int    `json:"contacts_sent"`
}

type IngestSnapshotRequest struct {
	Persona      string `json:"persona"`
	ContactsSent int    `json:"contacts_sent"`
	Opens        int    `json:"opens"`
	Clicks       int    `json:"clicks"`
	Unsubscribes int    `json:"unsubscribes"`
}

// CreateCampaign cria uma campanha em rascunho vinculada a um conteúdo
func CreateCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCampaign")

		var req CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.ContentID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do conteúdo é obrigatório", nil)
			return
		}

		campaign, err := service.CreateCampaign(req.ContentID, req.Name)
		if err != nil {
			if errors.Is(err, campaigning.ErrContentNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrIntegrityViolation, "Conteúdo referenciado não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao criar campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(campaign)
	}
}

// ListCampaigns lista as campanhas, com filtro opcional por status via query
// string (?status=draft|sent|analyzed)
func ListCampaigns(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *domain.CampaignStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed := domain.CampaignStatus(raw)
			if !parsed.Valid() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status de campanha inválido", nil)
				return
			}
			status = &parsed
		}

		campaigns, err := service.ListCampaigns(status)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar campanhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	}
}

// GetCampaign retorna uma campanha pelo identificador
func GetCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		campaign, err := service.GetCampaign(campaignID)
		if err != nil {
			if errors.Is(err, campaigning.ErrCampaignNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar campanha", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// SendCampaign move a campanha de rascunho para enviada
func SendCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SendCampaign")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		campaign, err := service.SendCampaign(campaignID)
		if err != nil {
			switch {
			case errors.Is(err, campaigning.ErrCampaignNotFound):
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)

			case errors.Is(err, campaigning.ErrInvalidTransition):
				apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar campanha", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

// SimulateCampaign gera snapshots simulados de performance. Com persona no
// corpo, simula apenas aquele segmento; sem corpo, todas as personas.
func SimulateCampaign(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SimulateCampaign")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		var req SimulateRequest
		// Corpo vazio é aceito: simula todas as personas
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Persona == "" {
			snapshots, err := service.SimulateCampaign(campaignID)
			if err != nil {
				handleSimulationError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(snapshots)
			return
		}

		persona, err := domain.ParsePersona(req.Persona)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Persona inválida", nil)
			return
		}

		snapshot, err := service.Simulate(campaignID, persona, req.ContactsSent)
		if err != nil {
			handleSimulationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshot)
	}
}

// IngestSnapshot registra um snapshot com contagens reais de engajamento
func IngestSnapshot(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - IngestSnapshot")

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		var req IngestSnapshotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		persona, err := domain.ParsePersona(req.Persona)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Persona inválida", nil)
			return
		}

		snapshot, err := service.Ingest(&domain.PerformanceSnapshot{
			CampaignID:   campaignID,
			Persona:      persona,
			ContactsSent: req.ContactsSent,
			Opens:        req.Opens,
			Clicks:       req.Clicks,
			Unsubscribes: req.Unsubscribes,
		})
		if err != nil {
			handleSimulationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshot)
	}
}

// ListSnapshots retorna o histórico de snapshots da campanha
func ListSnapshots(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		snapshots, err := service.ListSnapshots(campaignID)
		if err != nil {
			handleSimulationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshots)
	}
}

func handleSimulationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulating.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, simulating.ErrInvalidPersona):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Persona inválida", nil)

	case errors.Is(err, simulating.ErrInvalidInput):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, simulating.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, "Campanha ainda não foi enviada", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar métricas da campanha", nil)
	}
}
