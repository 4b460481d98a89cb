package domain

// FoodCostStatus indica a saúde do custo de alimentos em relação à meta
type FoodCostStatus string

const (
	FoodCostStatusHealthy  FoodCostStatus = "healthy"
	FoodCostStatusWatch    FoodCostStatus = "watch"
	FoodCostStatusCritical FoodCostStatus = "critical"
)

// watchMarginPoints é a tolerância em pontos percentuais acima da meta antes
// do status virar crítico
const watchMarginPoints = 3.0

// ComputeFoodCostStatus compara o custo de alimentos realizado com a meta
func ComputeFoodCostStatus(foodCostPercent, targetPercent float64) FoodCostStatus {
	switch {
	case foodCostPercent <= targetPercent:
		return FoodCostStatusHealthy
	case foodCostPercent <= targetPercent+watchMarginPoints:
		return FoodCostStatusWatch
	default:
		return FoodCostStatusCritical
	}
}

// OverviewReport são os KPIs gerais do período filtrado.
// FoodCostPercent e derivados são nulos quando a receita é zero ou quando o
// dataset foi carregado sem a coluna de custo (modo degradado).
type OverviewReport struct {
	TotalRevenue          float64           `json:"total_revenue"`
	TotalCost             float64           `json:"total_cost"`
	GrossMargin           float64           `json:"gross_margin"`
	FoodCostPercent       *float64          `json:"food_cost_percent"`
	TargetFoodCostPercent float64           `json:"target_food_cost_percent"`
	Status                FoodCostStatus    `json:"status,omitempty"`
	WasteCost             float64           `json:"waste_cost"`
	WasteRate             float64           `json:"waste_rate"`
	AverageTicket         float64           `json:"average_ticket"`
	TransactionCount      int               `json:"transaction_count"`
	OrderCount            int               `json:"order_count"`
	Filters               *AnalyticsFilters `json:"filters,omitempty"`
}
