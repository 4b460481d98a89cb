package analyzing

import (
	"errors"
)

// Erros específicos para o contexto de análises
var (
	// ErrCostDataUnavailable indica que o dataset foi carregado sem a coluna
	// de custo unitário e as análises de margem estão desabilitadas
	ErrCostDataUnavailable = errors.New("dados de custo indisponíveis no dataset carregado")

	// ErrChannelDataUnavailable indica que o dataset foi carregado sem a
	// coluna de canal e as análises por canal estão desabilitadas
	ErrChannelDataUnavailable = errors.New("dados de canal indisponíveis no dataset carregado")

	// ErrNoMatchingData indica que os filtros não retornaram nenhuma transação
	ErrNoMatchingData = errors.New("nenhuma transação encontrada para os filtros informados")
)
