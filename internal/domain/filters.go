package domain

import (
	"time"
)

// MedianPolicy define sobre qual conjunto as medianas da matriz de engenharia
// de cardápio são calculadas
type MedianPolicy string

const (
	// MedianPolicyFiltered recalcula as medianas sobre o conjunto filtrado a
	// cada requisição. A classificação dos itens depende do filtro ativo.
	MedianPolicyFiltered MedianPolicy = "filtered"
	// MedianPolicyGlobal usa as medianas do conjunto completo, calculadas uma
	// única vez na carga do dataset.
	MedianPolicyGlobal MedianPolicy = "global"
)

// ParseMedianPolicy valida uma política de mediana; string vazia usa o default
func ParseMedianPolicy(value string, fallback MedianPolicy) MedianPolicy {
	switch MedianPolicy(value) {
	case MedianPolicyFiltered, MedianPolicyGlobal:
		return MedianPolicy(value)
	}
	return fallback
}

// AnalyticsFilters são os filtros aplicáveis a todas as operações de análise.
// Campos nulos ou vazios significam "sem restrição".
type AnalyticsFilters struct {
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Channels   []Channel  `json:"channels,omitempty"`
}

// Matches verifica se uma transação satisfaz todos os filtros
func (f *AnalyticsFilters) Matches(t *Transaction) bool {
	if f == nil {
		return true
	}

	if f.StartDate != nil && t.Timestamp.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil {
		// EndDate é inclusivo: considera o dia inteiro
		endOfDay := time.Date(f.EndDate.Year(), f.EndDate.Month(), f.EndDate.Day(), 23, 59, 59, 0, f.EndDate.Location())
		if t.Timestamp.After(endOfDay) {
			return false
		}
	}

	if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
		return false
	}

	if len(f.Channels) > 0 && !containsChannel(f.Channels, t.Channel) {
		return false
	}

	return true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsChannel(values []Channel, target Channel) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
