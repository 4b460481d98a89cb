package domain

import (
	"sort"
)

// Quadrant representa a classificação de um item na matriz de engenharia de
// cardápio (venda x margem)
type Quadrant string

const (
	QuadrantStar      Quadrant = "star"
	QuadrantPlowhorse Quadrant = "plowhorse"
	QuadrantPuzzle    Quadrant = "puzzle"
	QuadrantDog       Quadrant = "dog"
)

// ClassifyQuadrant aplica a tabela 2x2 da matriz de engenharia de cardápio
func ClassifyQuadrant(highRevenue, highMargin bool) Quadrant {
	switch {
	case highRevenue && highMargin:
		return QuadrantStar
	case highRevenue && !highMargin:
		return QuadrantPlowhorse
	case !highRevenue && highMargin:
		return QuadrantPuzzle
	default:
		return QuadrantDog
	}
}

// ItemSummary representa as métricas agregadas de um item do cardápio.
// MarginPercent e FoodCostPercent são nulos quando a receita do item é zero:
// o valor é indefinido e fica fora das medianas e das médias agregadas.
type ItemSummary struct {
	ItemName           string   `json:"item_name"`
	Category           string   `json:"category"`
	TotalRevenue       float64  `json:"total_revenue"`
	TotalCost          float64  `json:"total_cost"`
	TotalQuantity      int      `json:"total_quantity"`
	WasteQuantity      int      `json:"waste_quantity"`
	ContributionMargin float64  `json:"contribution_margin"`
	MarginPerUnit      float64  `json:"margin_per_unit"`
	MarginPercent      *float64 `json:"margin_percent"`
	FoodCostPercent    *float64 `json:"food_cost_percent"`
	Quadrant           Quadrant `json:"quadrant,omitempty"`
}

// MedianThresholds são os cortes usados na classificação dos quadrantes
type MedianThresholds struct {
	Revenue       float64 `json:"median_revenue"`
	MarginPercent float64 `json:"median_margin_percent"`
}

// Median retorna a mediana de um conjunto de valores: elemento central para
// quantidade ímpar, média dos dois centrais para quantidade par.
// Retorna zero para conjunto vazio.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MenuEngineeringReport é a resposta da matriz de engenharia de cardápio
type MenuEngineeringReport struct {
	Items        []*ItemSummary    `json:"items"`
	Thresholds   MedianThresholds  `json:"thresholds"`
	MedianPolicy MedianPolicy      `json:"median_policy"`
	Counts       map[Quadrant]int  `json:"counts"`
	Filters      *AnalyticsFilters `json:"filters,omitempty"`
}
