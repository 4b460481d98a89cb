package simulating

import (
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// MenuAnalyzer é o recorte do serviço de análises usado pela simulação
type MenuAnalyzer interface {
	MenuEngineering(filters *domain.AnalyticsFilters, policy domain.MedianPolicy) (*domain.MenuEngineeringReport, error)
}

// Simulator projeta o impacto de uma mudança de preço sobre um item
type Simulator interface {
	SimulatePrice(request *domain.PriceSimulationRequest) (*domain.ProjectedImpact, error)
}

// Service implementa a interface Simulator
type Service struct {
	cfg      *config.Config
	analyzer MenuAnalyzer
}

// NewService cria uma nova instância do serviço de simulação
func NewService(cfg *config.Config, analyzer MenuAnalyzer) *Service {
	return &Service{
		cfg:      cfg,
		analyzer: analyzer,
	}
}

// SimulatePrice aplica o modelo de elasticidade-preço constante sobre o
// histórico do item: a variação percentual de preço multiplicada pela
// elasticidade dá a variação percentual projetada do volume
func (s *Service) SimulatePrice(request *domain.PriceSimulationRequest) (*domain.ProjectedImpact, error) {
	if request.NewPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	elasticity := s.cfg.Analytics.DefaultElasticity
	if request.Elasticity != nil {
		elasticity = *request.Elasticity
	}

	policy := domain.ParseMedianPolicy(request.MedianPolicy, domain.MedianPolicy(s.cfg.Analytics.MedianPolicy))

	// A matriz sem filtros traz o histórico completo do item e os cortes de
	// mediana usados na reclassificação
	report, err := s.analyzer.MenuEngineering(nil, policy)
	if err != nil {
		return nil, err
	}

	item := findItem(report.Items, request.ItemName)
	if item == nil {
		return nil, ErrItemNotFound
	}

	if item.TotalQuantity == 0 {
		return nil, ErrNoSalesHistory
	}

	currentPrice := item.TotalRevenue / float64(item.TotalQuantity)
	priceChange := (request.NewPrice - currentPrice) / currentPrice

	projectedQuantity := float64(item.TotalQuantity) * (1 + elasticity*priceChange)
	if projectedQuantity < 0 {
		// O modelo linear pode extrapolar para volume negativo em aumentos
		// grandes de preço; o piso é zero
		projectedQuantity = 0
	}

	// Custo unitário médio observado, incluindo unidades descartadas
	unitCost := 0.0
	if units := item.TotalQuantity + item.WasteQuantity; units > 0 {
		unitCost = item.TotalCost / float64(units)
	}

	projectedRevenue := request.NewPrice * projectedQuantity
	currentMargin := item.TotalRevenue - item.TotalCost
	projectedMargin := (request.NewPrice - unitCost) * projectedQuantity

	impact := &domain.ProjectedImpact{
		ItemName:          item.ItemName,
		CurrentPrice:      utils.RoundWithTwoDecimalPlace(currentPrice),
		NewPrice:          request.NewPrice,
		PriceChangePct:    utils.RoundWithTwoDecimalPlace(priceChange * 100),
		Elasticity:        elasticity,
		CurrentQuantity:   item.TotalQuantity,
		ProjectedQuantity: utils.RoundWithTwoDecimalPlace(projectedQuantity),
		CurrentRevenue:    item.TotalRevenue,
		ProjectedRevenue:  utils.RoundWithTwoDecimalPlace(projectedRevenue),
		CurrentMargin:     utils.RoundWithTwoDecimalPlace(currentMargin),
		ProjectedMargin:   utils.RoundWithTwoDecimalPlace(projectedMargin),
		NetMarginImpact:   utils.RoundWithTwoDecimalPlace(projectedMargin - currentMargin),
		CurrentQuadrant:   item.Quadrant,
	}

	// Reclassificação contra os mesmos cortes de mediana do histórico
	highRevenue := projectedRevenue >= report.Thresholds.Revenue
	highMargin := false
	if request.NewPrice > 0 && projectedRevenue > 0 {
		projectedMarginPercent := (request.NewPrice - unitCost) / request.NewPrice * 100
		highMargin = projectedMarginPercent >= report.Thresholds.MarginPercent
	}
	impact.ProjectedQuadrant = domain.ClassifyQuadrant(highRevenue, highMargin)

	logrus.WithFields(logrus.Fields{
		"item":              impact.ItemName,
		"preco_atual":       impact.CurrentPrice,
		"preco_novo":        impact.NewPrice,
		"elasticidade":      impact.Elasticity,
		"volume_projetado":  impact.ProjectedQuantity,
		"impacto_na_margem": impact.NetMarginImpact,
	}).Debug("Simulação de preço calculada")

	return impact, nil
}

func findItem(items []*domain.ItemSummary, name string) *domain.ItemSummary {
	for _, item := range items {
		if item.ItemName == name {
			return item
		}
	}
	return nil
}
