package analyzing

import (
	"sort"

	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// wasteAggregate acumula os valores de um grupo durante a agregação
type wasteAggregate struct {
	wastedUnits int
	soldUnits   int
	wasteCost   float64
}

// Waste agrega o desperdício na dimensão pedida (item, tipo ou canal)
func (s *Service) Waste(dimension domain.WasteDimension, filters *domain.AnalyticsFilters) (*domain.WasteReport, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	if dimension == domain.WasteDimensionChannel && !table.HasChannel() {
		return nil, ErrChannelDataUnavailable
	}

	aggregates := make(map[string]*wasteAggregate)
	totalUnits := 0

	for _, transaction := range table.Filter(filters) {
		totalUnits += transaction.UnitsHandled()

		key := wasteKey(dimension, transaction)
		if key == "" {
			// Transações sem desperdício não formam grupo na dimensão "type"
			continue
		}

		aggregate, exists := aggregates[key]
		if !exists {
			aggregate = &wasteAggregate{}
			aggregates[key] = aggregate
		}

		aggregate.wastedUnits += transaction.WasteQuantity
		aggregate.soldUnits += transaction.Quantity
		aggregate.wasteCost += transaction.WasteCost()
	}

	records := make([]*domain.WasteRecord, 0, len(aggregates))
	totalWasteCost := 0.0

	for value, aggregate := range aggregates {
		record := &domain.WasteRecord{
			Dimension:      dimension,
			DimensionValue: value,
			WasteQuantity:  aggregate.wastedUnits,
			TotalWasteCost: utils.RoundWithTwoDecimalPlace(aggregate.wasteCost),
		}

		// Na dimensão "type" o grupo só tem unidades descartadas, então a taxa
		// é calculada sobre o total de unidades do conjunto filtrado
		units := aggregate.soldUnits + aggregate.wastedUnits
		if dimension == domain.WasteDimensionType {
			units = totalUnits
		}

		if units > 0 {
			record.WasteRate = utils.RoundWithTwoDecimalPlace(float64(aggregate.wastedUnits) / float64(units) * 100)
		}

		totalWasteCost += aggregate.wasteCost
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].TotalWasteCost != records[j].TotalWasteCost {
			return records[i].TotalWasteCost > records[j].TotalWasteCost
		}
		return records[i].DimensionValue < records[j].DimensionValue
	})

	return &domain.WasteReport{
		Dimension:      dimension,
		Records:        records,
		TotalWasteCost: utils.RoundWithTwoDecimalPlace(totalWasteCost),
		Filters:        filters,
	}, nil
}

// wasteKey escolhe o valor de agrupamento da transação na dimensão pedida.
// Na dimensão "type" somente linhas com desperdício entram na agregação, já
// que o tipo não existe para vendas normais.
func wasteKey(dimension domain.WasteDimension, transaction *domain.Transaction) string {
	switch dimension {
	case domain.WasteDimensionItem:
		return transaction.ItemName
	case domain.WasteDimensionChannel:
		return string(transaction.Channel)
	case domain.WasteDimensionType:
		if transaction.WasteQuantity == 0 {
			return ""
		}
		return string(transaction.WasteType)
	}
	return ""
}
