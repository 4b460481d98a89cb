package domain

// PriceSimulationRequest são os parâmetros da simulação de preço de um item.
// Elasticity é a constante de elasticidade-preço da demanda informada pelo
// usuário (tipicamente negativa); não há calibração automática.
type PriceSimulationRequest struct {
	ItemName     string   `json:"item_name"`
	NewPrice     float64  `json:"new_price"`
	Elasticity   *float64 `json:"elasticity,omitempty"`
	MedianPolicy string   `json:"median_policy,omitempty"`
}

// ProjectedImpact é o resultado da simulação: volume, receita e margem
// projetados com o novo preço e o custo unitário inalterado
type ProjectedImpact struct {
	ItemName          string   `json:"item_name"`
	CurrentPrice      float64  `json:"current_price"`
	NewPrice          float64  `json:"new_price"`
	PriceChangePct    float64  `json:"price_change_pct"`
	Elasticity        float64  `json:"elasticity"`
	CurrentQuantity   int      `json:"current_quantity"`
	ProjectedQuantity float64  `json:"projected_quantity"`
	CurrentRevenue    float64  `json:"current_revenue"`
	ProjectedRevenue  float64  `json:"projected_revenue"`
	CurrentMargin     float64  `json:"current_margin"`
	ProjectedMargin   float64  `json:"projected_margin"`
	NetMarginImpact   float64  `json:"net_margin_impact"`
	CurrentQuadrant   Quadrant `json:"current_quadrant"`
	ProjectedQuadrant Quadrant `json:"projected_quadrant"`
}
