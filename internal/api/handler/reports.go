package handler

import (
	"net/http"
	"time"

	"github.com/headply/restaurant-analysis/infrastructure/repository"
	"github.com/headply/restaurant-analysis/pkg/apiErrors"
	"github.com/headply/restaurant-analysis/pkg/log"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// GetDailyReports retorna os retratos diários persistidos pela sincronização.
// Sem parâmetros, devolve os últimos 30 dias; date busca um único dia;
// start_date/end_date delimitam o intervalo.
func GetDailyReports(repo repository.ReportSnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		if raw := query.Get("date"); raw != "" {
			date, err := utils.ParseDate(raw)
			if err != nil {
				logger.WithField("date", raw).Warn("reports: parâmetro date inválido")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			snapshot, err := repo.GetByDate(*date)
			if err != nil {
				logger.WithField("error", err.Error()).Error("reports: falha ao buscar o relatório diário")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
				return
			}

			if snapshot == nil {
				apiErrors.WriteError(w, apiErrors.ErrNoData, "Nenhum relatório encontrado para a data informada", nil)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(snapshot)
			return
		}

		endDate := time.Now()
		startDate := endDate.AddDate(0, 0, -30)

		if raw := query.Get("start_date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				logger.WithField("start_date", raw).Warn("reports: parâmetro start_date inválido")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			startDate = *parsed
		}

		if raw := query.Get("end_date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				logger.WithField("end_date", raw).Warn("reports: parâmetro end_date inválido")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			endDate = *parsed
		}

		snapshots, err := repo.GetByDateRange(startDate, endDate)
		if err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao listar os relatórios diários")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			logger.WithField("error", err.Error()).Error("reports: falha ao serializar a resposta")
		}
	})
}
