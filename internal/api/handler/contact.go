package handler

import (
	"encoding/json"
	"net/http"

	"github.com/novamind/content-pipeline-api/internal/domain"
	"github.com/novamind/content-pipeline-api/internal/usecases/collecting"
	"github.com/novamind/content-pipeline-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// SyncContacts importa a base de contatos do CRM
func SyncContacts(service collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncContacts")

		synced, err := service.SyncContacts(r.Context())
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao sincronizar contatos do CRM", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"synced": synced,
		})
	}
}

// ListContacts lista os contatos de uma persona (?persona=founders)
func ListContacts(service collecting.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("persona")
		if raw == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Persona não fornecida", nil)
			return
		}

		persona, err := domain.ParsePersona(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Persona inválida", nil)
			return
		}

		contacts, err := service.ListContacts(persona)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar contatos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contacts)
	}
}
