package analyzing

import (
	"fmt"
	"sort"
	"time"

	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/pkg/utils"
)

// timeAggregate acumula os valores de um bucket durante a agregação
type timeAggregate struct {
	revenue  float64
	quantity int
	orders   map[string]bool
}

// TimePatterns agrega receita e volume na granularidade pedida.
// Os buckets saem na ordem natural da dimensão: horas 0 a 23, dias de segunda
// a domingo e meses em ordem cronológica.
func (s *Service) TimePatterns(granularity domain.TimeGranularity, filters *domain.AnalyticsFilters) (*domain.TimePatternReport, error) {
	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	aggregates := make(map[string]*timeAggregate)

	for _, transaction := range table.Filter(filters) {
		key := bucketKey(granularity, transaction.Timestamp)

		aggregate, exists := aggregates[key]
		if !exists {
			aggregate = &timeAggregate{orders: make(map[string]bool)}
			aggregates[key] = aggregate
		}

		aggregate.revenue += transaction.Revenue()
		aggregate.quantity += transaction.Quantity

		if transaction.Quantity > 0 {
			aggregate.orders[transaction.OrderID] = true
		}
	}

	buckets := make([]*domain.TimeBucket, 0, len(aggregates))

	for _, key := range bucketOrder(granularity, aggregates) {
		aggregate, exists := aggregates[key]
		if !exists {
			// Buckets fixos sem movimento saem zerados para manter o eixo completo
			aggregate = &timeAggregate{orders: make(map[string]bool)}
		}

		buckets = append(buckets, &domain.TimeBucket{
			Bucket:   key,
			Revenue:  utils.RoundWithTwoDecimalPlace(aggregate.revenue),
			Quantity: aggregate.quantity,
			Orders:   len(aggregate.orders),
		})
	}

	return &domain.TimePatternReport{
		Granularity: granularity,
		Buckets:     buckets,
		Filters:     filters,
	}, nil
}

func bucketKey(granularity domain.TimeGranularity, timestamp time.Time) string {
	switch granularity {
	case domain.GranularityHour:
		return fmt.Sprintf("%02d", timestamp.Hour())
	case domain.GranularityWeekday:
		return timestamp.Weekday().String()
	default:
		return timestamp.Format("2006-01")
	}
}

// bucketOrder devolve as chaves na ordem de exibição da granularidade
func bucketOrder(granularity domain.TimeGranularity, aggregates map[string]*timeAggregate) []string {
	switch granularity {
	case domain.GranularityHour:
		keys := make([]string, 0, 24)
		for hour := 0; hour < 24; hour++ {
			keys = append(keys, fmt.Sprintf("%02d", hour))
		}
		return keys

	case domain.GranularityWeekday:
		return domain.Weekdays

	default:
		// Meses só aparecem quando têm movimento, em ordem cronológica
		keys := make([]string, 0, len(aggregates))
		for key := range aggregates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	}
}
