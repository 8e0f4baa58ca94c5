package handler

import (
	"net/http"

	"github.com/novamind/content-pipeline-api/internal/usecases/exporting"
	"github.com/novamind/content-pipeline-api/pkg/apiErrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExportHistory serializa todo o histórico do pipeline no formato pedido
// (?format=json, padrão json)
func ExportHistory(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ExportHistory")

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}

		payload, err := service.ExportHistory(format)
		if err != nil {
			if errors.Is(err, exporting.ErrUnsupportedFormat) {
				apiErrors.WriteError(w, apiErrors.ErrUnsupportedFormat, "Formato de exportação não suportado", map[string]any{
					"format": format,
				})
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar histórico", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="pipeline-history.json"`)
		w.Write(payload)
	}
}
