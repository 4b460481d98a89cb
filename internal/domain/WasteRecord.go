package domain

import "fmt"

// WasteDimension define o agrupamento da análise de desperdício
type WasteDimension string

const (
	WasteDimensionItem    WasteDimension = "item"
	WasteDimensionType    WasteDimension = "type"
	WasteDimensionChannel WasteDimension = "channel"
)

// ParseWasteDimension valida uma dimensão de desperdício
func ParseWasteDimension(value string) (WasteDimension, error) {
	switch WasteDimension(value) {
	case WasteDimensionItem, WasteDimensionType, WasteDimensionChannel:
		return WasteDimension(value), nil
	}
	return "", fmt.Errorf("dimensão de desperdício inválida: %q (valores aceitos: item, type, channel)", value)
}

// WasteRecord representa o desperdício agregado em uma dimensão.
// WasteRate é a proporção de unidades descartadas sobre unidades movimentadas
// (vendidas + descartadas) no grupo; zero quando o grupo não movimentou nada.
type WasteRecord struct {
	Dimension      WasteDimension `json:"dimension"`
	DimensionValue string         `json:"dimension_value"`
	WasteQuantity  int            `json:"waste_quantity"`
	TotalWasteCost float64        `json:"total_waste_cost"`
	WasteRate      float64        `json:"waste_rate"`
}

// WasteReport é a resposta da análise de desperdício
type WasteReport struct {
	Dimension      WasteDimension    `json:"dimension"`
	Records        []*WasteRecord    `json:"records"`
	TotalWasteCost float64           `json:"total_waste_cost"`
	Filters        *AnalyticsFilters `json:"filters,omitempty"`
}
