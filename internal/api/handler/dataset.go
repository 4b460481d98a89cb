package handler

import (
	"io"
	"net/http"

	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/usecases/provisioning"
	"github.com/headply/restaurant-analysis/pkg/apiErrors"
	"github.com/headply/restaurant-analysis/pkg/log"
)

func GetDatasetStatus(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := service.Status()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithField("error", err.Error()).Error("dataset: falha ao serializar o status")
		}
	})
}

func GenerateDataset(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		// Corpo vazio usa integralmente a configuração ativa
		var request *domain.DatasetGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil && err != io.EOF {
			logger.WithField("error", err.Error()).Warn("dataset: corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		logger.Info("dataset: regenerando o dataset sintético")

		status, err := service.Generate(request)
		if err != nil {
			logger.WithField("error", err.Error()).Error("dataset: falha ao regenerar o dataset")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithField("error", err.Error()).Error("dataset: falha ao serializar o status")
		}
	})
}

func ReloadDataset(service provisioning.Provisioner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		logger.Info("dataset: recarregando o CSV do disco")

		status, err := service.Reload()
		if err != nil {
			logger.WithField("error", err.Error()).Error("dataset: falha ao recarregar o CSV")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithField("error", err.Error()).Error("dataset: falha ao serializar o status")
		}
	})
}
