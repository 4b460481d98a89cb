package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/usecases/simulating"
	"github.com/headply/restaurant-analysis/pkg/apiErrors"
	"github.com/headply/restaurant-analysis/pkg/log"
)

func SimulatePrice(service simulating.Simulator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.PriceSimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithField("error", err.Error()).Warn("simulação: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if request.ItemName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O campo item_name é obrigatório", nil)
			return
		}

		logger.WithFields(log.Fields{
			"item_name": request.ItemName,
			"new_price": request.NewPrice,
		}).Info("simulação: calculando impacto de preço")

		impact, err := service.SimulatePrice(&request)
		if err != nil {
			logger.WithFields(log.Fields{
				"item_name": request.ItemName,
				"error":     err.Error(),
			}).Error("simulação: falha ao projetar o impacto")
			writeSimulationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(impact); err != nil {
			logger.WithField("error", err.Error()).Error("simulação: falha ao serializar a resposta")
		}
	})
}

func writeSimulationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulating.ErrInvalidPrice):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, simulating.ErrItemNotFound), errors.Is(err, simulating.ErrNoSalesHistory):
		apiErrors.WriteError(w, apiErrors.ErrNoData, err.Error(), nil)
	default:
		writeAnalysisError(w, err)
	}
}
