package domain

import (
	"fmt"
	"time"
)

// Channel representa o canal de venda de uma transação
type Channel string

const (
	ChannelDineIn   Channel = "dine-in"
	ChannelTakeout  Channel = "takeout"
	ChannelDelivery Channel = "delivery"
)

// AllChannels lista os canais válidos na ordem de exibição
var AllChannels = []Channel{ChannelDineIn, ChannelTakeout, ChannelDelivery}

// ParseChannel converte uma string em Channel, validando o valor
func ParseChannel(value string) (Channel, error) {
	switch Channel(value) {
	case ChannelDineIn, ChannelTakeout, ChannelDelivery:
		return Channel(value), nil
	}
	return "", fmt.Errorf("canal de venda inválido: %q", value)
}

// WasteType representa o motivo do desperdício de um item
type WasteType string

const (
	WasteTypeNone     WasteType = "none"
	WasteTypeReturn   WasteType = "return"
	WasteTypeError    WasteType = "error"
	WasteTypeSpoilage WasteType = "spoilage"
)

// ParseWasteType converte uma string em WasteType, validando o valor.
// String vazia é tratada como "none".
func ParseWasteType(value string) (WasteType, error) {
	if value == "" {
		return WasteTypeNone, nil
	}
	switch WasteType(value) {
	case WasteTypeNone, WasteTypeReturn, WasteTypeError, WasteTypeSpoilage:
		return WasteType(value), nil
	}
	return "", fmt.Errorf("tipo de desperdício inválido: %q", value)
}

// Transaction representa uma linha do arquivo de transações do PDV.
// Quantity é a quantidade vendida (que gera receita) e WasteQuantity a
// quantidade descartada (que gera apenas custo). Imutável após a carga.
type Transaction struct {
	OrderID       string    `json:"order_id"`
	Timestamp     time.Time `json:"timestamp"`
	ItemName      string    `json:"item_name"`
	Category      string    `json:"category"`
	Channel       Channel   `json:"channel"`
	UnitPrice     float64   `json:"unit_price"`
	UnitCost      float64   `json:"unit_cost"`
	Quantity      int       `json:"quantity"`
	WasteQuantity int       `json:"waste_quantity"`
	WasteType     WasteType `json:"waste_type"`
}

// Revenue retorna a receita da transação (apenas unidades vendidas)
func (t *Transaction) Revenue() float64 {
	return t.UnitPrice * float64(t.Quantity)
}

// Cost retorna o custo total da transação, incluindo unidades descartadas
func (t *Transaction) Cost() float64 {
	return t.UnitCost * float64(t.Quantity+t.WasteQuantity)
}

// WasteCost retorna o custo das unidades descartadas
func (t *Transaction) WasteCost() float64 {
	return t.UnitCost * float64(t.WasteQuantity)
}

// UnitsHandled retorna o total de unidades movimentadas (vendidas + descartadas)
func (t *Transaction) UnitsHandled() int {
	return t.Quantity + t.WasteQuantity
}
