package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/novamind/content-pipeline-api/internal/usecases/generating"
	"github.com/novamind/content-pipeline-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CreateContentRequest struct {
	Topic string `json:"topic"`
}

// CreateContent gera um post de blog a partir de um tópico e o persiste
func CreateContent(service generating.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateContent")

		var req CreateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		content, err := service.CreateContent(r.Context(), req.Topic)
		if err != nil {
			if errors.Is(err, generating.ErrEmptyTopic) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tópico é obrigatório", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao criar conteúdo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(content)
	}
}

// ListContent retorna todos os conteúdos publicados
func ListContent(service generating.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contents, err := service.ListContent()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar conteúdos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contents)
	}
}

// GetContent retorna um conteúdo pelo identificador
func GetContent(service generating.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if contentID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do conteúdo não fornecido", nil)
			return
		}

		content, err := service.GetContent(contentID)
		if err != nil {
			if errors.Is(err, generating.ErrContentNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conteúdo não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar conteúdo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(content)
	}
}

// GenerateNewsletters cria a variação de newsletter de cada persona para um
// conteúdo existente
func GenerateNewsletters(service generating.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateNewsletters")

		contentID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if contentID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do conteúdo não fornecido", nil)
			return
		}

		newsletters, err := service.GenerateNewsletters(r.Context(), contentID)
		if err != nil {
			if errors.Is(err, generating.ErrContentNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conteúdo não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar newsletters", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newsletters)
	}
}

// ListNewsletters retorna as variações de newsletter de um conteúdo
func ListNewsletters(service generating.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if contentID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do conteúdo não fornecido", nil)
			return
		}

		newsletters, err := service.ListNewsletters(contentID)
		if err != nil {
			if errors.Is(err, generating.ErrContentNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Conteúdo não encontrado", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar newsletters", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newsletters)
	}
}
