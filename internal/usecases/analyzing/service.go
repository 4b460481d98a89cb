package analyzing

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// Service implementa a interface Analyzer sobre o dataset em memória
type Service struct {
	cfg   *config.Config
	store *dataset.Store
}

// NewService cria uma nova instância do serviço de análises
func NewService(cfg *config.Config, store *dataset.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: store,
	}
}

// itemAggregate acumula os valores de um item durante a agregação
type itemAggregate struct {
	category      string
	revenue       float64
	cost          float64
	quantity      int
	wasteQuantity int
}

// Overview calcula os KPIs gerais do período filtrado. targetOverride, quando
// informado, substitui a meta de custo de alimentos da configuração.
func (s *Service) Overview(filters *domain.AnalyticsFilters, targetOverride *float64) (*domain.OverviewReport, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	target := s.cfg.Analytics.TargetFoodCostPercent
	if targetOverride != nil && *targetOverride > 0 {
		target = *targetOverride
	}

	transactions := table.Filter(filters)

	var (
		totalRevenue float64
		totalCost    float64
		wasteCost    float64
		soldUnits    int
		wastedUnits  int
	)

	orders := make(map[string]bool)

	for _, transaction := range transactions {
		totalRevenue += transaction.Revenue()
		totalCost += transaction.Cost()
		wasteCost += transaction.WasteCost()
		soldUnits += transaction.Quantity
		wastedUnits += transaction.WasteQuantity

		if transaction.Quantity > 0 {
			orders[transaction.OrderID] = true
		}
	}

	report := &domain.OverviewReport{
		TotalRevenue:          utils.RoundWithTwoDecimalPlace(totalRevenue),
		TargetFoodCostPercent: target,
		TransactionCount:      len(transactions),
		OrderCount:            len(orders),
		Filters:               filters,
	}

	// Custo, margem e status só existem quando o dataset tem a coluna de custo
	if table.HasCost() {
		report.TotalCost = utils.RoundWithTwoDecimalPlace(totalCost)
		report.GrossMargin = utils.RoundWithTwoDecimalPlace(totalRevenue - totalCost)
		report.WasteCost = utils.RoundWithTwoDecimalPlace(wasteCost)

		if totalRevenue > 0 {
			foodCost := utils.RoundWithTwoDecimalPlace(totalCost / totalRevenue * 100)
			report.FoodCostPercent = &foodCost
			report.Status = domain.ComputeFoodCostStatus(foodCost, target)
		}
	}

	if soldUnits+wastedUnits > 0 {
		report.WasteRate = utils.RoundWithTwoDecimalPlace(float64(wastedUnits) / float64(soldUnits+wastedUnits) * 100)
	}

	if len(orders) > 0 {
		report.AverageTicket = utils.RoundWithTwoDecimalPlace(totalRevenue / float64(len(orders)))
	}

	return report, nil
}

// MenuEngineering monta a matriz de engenharia de cardápio: agrega os itens do
// conjunto filtrado e classifica cada um nos quadrantes pela mediana de
// receita e de margem percentual
func (s *Service) MenuEngineering(filters *domain.AnalyticsFilters, policy domain.MedianPolicy) (*domain.MenuEngineeringReport, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	if !table.HasCost() {
		return nil, ErrCostDataUnavailable
	}

	if policy == "" {
		policy = domain.ParseMedianPolicy(s.cfg.Analytics.MedianPolicy, domain.MedianPolicyFiltered)
	}

	items := summarizeItems(table.Filter(filters))
	if len(items) == 0 {
		return nil, ErrNoMatchingData
	}

	thresholds := medianThresholds(items)
	if policy == domain.MedianPolicyGlobal {
		// As medianas globais vêm do dataset completo, ignorando os filtros
		thresholds = medianThresholds(summarizeItems(table.All()))
	}

	counts := make(map[domain.Quadrant]int)

	for _, item := range items {
		// Sem receita não há margem percentual: o item fica fora das medianas
		// e vai direto para dog
		if item.MarginPercent == nil {
			item.Quadrant = domain.QuadrantDog
			counts[item.Quadrant]++
			continue
		}

		highRevenue := item.TotalRevenue >= thresholds.Revenue
		highMargin := *item.MarginPercent >= thresholds.MarginPercent

		item.Quadrant = domain.ClassifyQuadrant(highRevenue, highMargin)
		counts[item.Quadrant]++
	}

	logrus.WithFields(logrus.Fields{
		"itens":           len(items),
		"politica":        policy,
		"mediana_receita": thresholds.Revenue,
		"mediana_margem":  thresholds.MarginPercent,
	}).Debug("Matriz de engenharia de cardápio calculada")

	return &domain.MenuEngineeringReport{
		Items:        items,
		Thresholds:   thresholds,
		MedianPolicy: policy,
		Counts:       counts,
		Filters:      filters,
	}, nil
}

// summarizeItems agrega as transações por item e ordena por receita decrescente
func summarizeItems(transactions []*domain.Transaction) []*domain.ItemSummary {
	aggregates := make(map[string]*itemAggregate)

	for _, transaction := range transactions {
		aggregate, exists := aggregates[transaction.ItemName]
		if !exists {
			aggregate = &itemAggregate{category: transaction.Category}
			aggregates[transaction.ItemName] = aggregate
		}

		aggregate.revenue += transaction.Revenue()
		aggregate.cost += transaction.Cost()
		aggregate.quantity += transaction.Quantity
		aggregate.wasteQuantity += transaction.WasteQuantity
	}

	items := make([]*domain.ItemSummary, 0, len(aggregates))

	for name, aggregate := range aggregates {
		item := &domain.ItemSummary{
			ItemName:           name,
			Category:           aggregate.category,
			TotalRevenue:       utils.RoundWithTwoDecimalPlace(aggregate.revenue),
			TotalCost:          utils.RoundWithTwoDecimalPlace(aggregate.cost),
			TotalQuantity:      aggregate.quantity,
			WasteQuantity:      aggregate.wasteQuantity,
			ContributionMargin: utils.RoundWithTwoDecimalPlace(aggregate.revenue - aggregate.cost),
		}

		if aggregate.quantity > 0 {
			item.MarginPerUnit = utils.RoundWithTwoDecimalPlace((aggregate.revenue - aggregate.cost) / float64(aggregate.quantity))
		}

		// Percentuais são indefinidos sem receita: ficam nulos e fora das medianas
		if aggregate.revenue > 0 {
			marginPercent := utils.RoundWithTwoDecimalPlace((aggregate.revenue - aggregate.cost) / aggregate.revenue * 100)
			foodCostPercent := utils.RoundWithTwoDecimalPlace(aggregate.cost / aggregate.revenue * 100)
			item.MarginPercent = &marginPercent
			item.FoodCostPercent = &foodCostPercent
		}

		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalRevenue != items[j].TotalRevenue {
			return items[i].TotalRevenue > items[j].TotalRevenue
		}
		return items[i].ItemName < items[j].ItemName
	})

	return items
}

// medianThresholds calcula os cortes de receita e margem sobre os itens dados
func medianThresholds(items []*domain.ItemSummary) domain.MedianThresholds {
	revenues := make([]float64, 0, len(items))
	margins := make([]float64, 0, len(items))

	for _, item := range items {
		revenues = append(revenues, item.TotalRevenue)

		if item.MarginPercent != nil {
			margins = append(margins, *item.MarginPercent)
		}
	}

	return domain.MedianThresholds{
		Revenue:       domain.Median(revenues),
		MarginPercent: domain.Median(margins),
	}
}
