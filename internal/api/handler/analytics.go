package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/usecases/analyzing"
	"github.com/headply/restaurant-analysis/pkg/apiErrors"
	"github.com/headply/restaurant-analysis/pkg/log"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// parseAnalyticsFilters monta os filtros de análise a partir dos parâmetros
// de query: start_date, end_date (YYYY-MM-DD), categories e channels (listas
// separadas por vírgula)
func parseAnalyticsFilters(r *http.Request) (*domain.AnalyticsFilters, error) {
	filters := &domain.AnalyticsFilters{}
	query := r.URL.Query()

	if raw := query.Get("start_date"); raw != "" {
		startDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parâmetro start_date inválido")
		}
		filters.StartDate = startDate
	}

	if raw := query.Get("end_date"); raw != "" {
		endDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parâmetro end_date inválido")
		}
		filters.EndDate = endDate
	}

	if raw := query.Get("categories"); raw != "" {
		for _, category := range strings.Split(raw, ",") {
			if category = strings.TrimSpace(category); category != "" {
				filters.Categories = append(filters.Categories, category)
			}
		}
	}

	if raw := query.Get("channels"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			channel, err := domain.ParseChannel(strings.TrimSpace(value))
			if err != nil {
				return nil, errors.Wrap(err, "parâmetro channels inválido")
			}
			filters.Channels = append(filters.Channels, channel)
		}
	}

	return filters, nil
}

// writeAnalysisError traduz os erros das operações de análise para respostas
// padronizadas da API
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		apiErrors.WriteError(w, apiErrors.ErrDatasetNotLoaded, err.Error(), nil)
	case errors.Is(err, analyzing.ErrCostDataUnavailable), errors.Is(err, analyzing.ErrChannelDataUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrFeatureUnavailable, err.Error(), nil)
	case errors.Is(err, analyzing.ErrNoMatchingData):
		apiErrors.WriteError(w, apiErrors.ErrNoData, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}

func GetOverview(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// target_food_cost permite avaliar o status contra uma meta pontual
		var targetOverride *float64
		if raw := r.URL.Query().Get("target_food_cost"); raw != "" {
			target, err := strconv.ParseFloat(raw, 64)
			if err != nil || target <= 0 {
				logger.WithField("target_food_cost", raw).Warn("analytics: parâmetro target_food_cost inválido")
				http.Error(w, "parâmetro target_food_cost inválido", http.StatusBadRequest)
				return
			}
			targetOverride = &target
		}

		report, err := service.Overview(filters, targetOverride)
		if err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao calcular o overview")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao serializar a resposta")
		}
	})
}

func GetMenuEngineering(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rawPolicy := r.URL.Query().Get("median_policy")
		if rawPolicy != "" && domain.ParseMedianPolicy(rawPolicy, "") == "" {
			logger.WithField("median_policy", rawPolicy).Warn("analytics: política de mediana inválida")
			http.Error(w, fmt.Sprintf("política de mediana inválida: %q (valores aceitos: filtered, global)", rawPolicy), http.StatusBadRequest)
			return
		}

		report, err := service.MenuEngineering(filters, domain.MedianPolicy(rawPolicy))
		if err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha na matriz de engenharia de cardápio")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao serializar a resposta")
		}
	})
}

func GetWaste(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dimension, err := domain.ParseWasteDimension(r.URL.Query().Get("dimension"))
		if err != nil {
			logger.WithField("dimension", r.URL.Query().Get("dimension")).Warn("analytics: dimensão de desperdício inválida")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.Waste(dimension, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"dimension": dimension,
				"error":     err.Error(),
			}).Error("analytics: falha no relatório de desperdício")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao serializar a resposta")
		}
	})
}

func GetTimePatterns(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		granularity, err := domain.ParseTimeGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			logger.WithField("granularity", r.URL.Query().Get("granularity")).Warn("analytics: granularidade temporal inválida")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("analytics: parâmetros de filtro inválidos")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.TimePatterns(granularity, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"granularity": granularity,
				"error":       err.Error(),
			}).Error("analytics: falha no relatório de padrões temporais")
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("analytics: falha ao serializar a resposta")
		}
	})
}
