package simulating

import (
	"errors"
)

// Erros específicos para o contexto de simulações
var (
	ErrItemNotFound   = errors.New("item não encontrado no dataset")
	ErrInvalidPrice   = errors.New("o novo preço deve ser maior que zero")
	ErrNoSalesHistory = errors.New("item sem histórico de vendas para simular")
)
