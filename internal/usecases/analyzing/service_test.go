package analyzing

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/domain"
)

func testService(transactions []*domain.Transaction) *Service {
	cfg := &config.Config{
		Analytics: config.Analytics{
			TargetFoodCostPercent: 32.0,
			MedianPolicy:          "filtered",
			DefaultElasticity:     -1.5,
		},
	}

	store := dataset.NewStore("")
	store.Replace(transactions)

	return NewService(cfg, store)
}

func saleAt(orderID, item, category string, channel domain.Channel, price, cost float64, quantity int, timestamp time.Time) *domain.Transaction {
	return &domain.Transaction{
		OrderID:   orderID,
		Timestamp: timestamp,
		ItemName:  item,
		Category:  category,
		Channel:   channel,
		UnitPrice: price,
		UnitCost:  cost,
		Quantity:  quantity,
		WasteType: domain.WasteTypeNone,
	}
}

func wasteAt(orderID, item, category string, channel domain.Channel, cost float64, wasteType domain.WasteType, timestamp time.Time) *domain.Transaction {
	return &domain.Transaction{
		OrderID:       orderID,
		Timestamp:     timestamp,
		ItemName:      item,
		Category:      category,
		Channel:       channel,
		UnitPrice:     10.0,
		UnitCost:      cost,
		Quantity:      0,
		WasteQuantity: 1,
		WasteType:     wasteType,
	}
}

var baseDate = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) // segunda-feira

func TestOverview(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 2, baseDate),
		saleAt("ORD-1", "Soda", "Beverages", domain.ChannelDineIn, 3.0, 0.5, 1, baseDate),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelTakeout, 10.0, 4.0, 1, baseDate.Add(time.Hour)),
		wasteAt("ORD-3", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate.Add(2*time.Hour)),
	})

	report, err := service.Overview(nil, nil)
	assert.NoError(t, err)

	// Receita: 2x10 + 1x3 + 1x10 = 33 (desperdício não gera receita)
	assert.Equal(t, 33.0, report.TotalRevenue)
	// Custo inclui unidades descartadas: 2x4 + 0.5 + 4 + 4 = 16.5
	assert.Equal(t, 16.5, report.TotalCost)
	assert.Equal(t, 16.5, report.GrossMargin)
	assert.Equal(t, 4.0, report.WasteCost)
	assert.Equal(t, 4, report.TransactionCount)

	// ORD-3 só tem desperdício e não conta como pedido
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 16.5, report.AverageTicket)

	// 1 unidade descartada sobre 5 movimentadas
	assert.Equal(t, 20.0, report.WasteRate)

	// Food cost 16.5/33 = 50% contra meta de 32%
	assert.NotNil(t, report.FoodCostPercent)
	assert.Equal(t, 50.0, *report.FoodCostPercent)
	assert.Equal(t, domain.FoodCostStatusCritical, report.Status)
}

func TestOverviewWithTargetOverride(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 5.0, 1, baseDate),
	})

	target := 55.0
	report, err := service.Overview(nil, &target)
	assert.NoError(t, err)

	// Food cost de 50% fica saudável contra a meta pontual de 55%
	assert.Equal(t, 55.0, report.TargetFoodCostPercent)
	assert.Equal(t, domain.FoodCostStatusHealthy, report.Status)
}

func TestOverviewEmptyDataset(t *testing.T) {
	service := testService([]*domain.Transaction{})

	report, err := service.Overview(nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Nil(t, report.FoodCostPercent)
	assert.Equal(t, 0, report.OrderCount)
	assert.Equal(t, 0.0, report.AverageTicket)
	assert.Equal(t, 0.0, report.WasteRate)
}

func TestOverviewNotLoaded(t *testing.T) {
	service := NewService(&config.Config{}, dataset.NewStore("missing.csv"))

	_, err := service.Overview(nil, nil)
	assert.ErrorIs(t, err, dataset.ErrNotLoaded)
}

func TestMenuEngineeringQuadrants(t *testing.T) {
	// Três itens com receitas [100, 50, 10] e margens [40%, 60%, 20%]:
	// medianas de corte em 50 de receita e 40% de margem
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Ribeye", "Mains", domain.ChannelDineIn, 100.0, 60.0, 1, baseDate),
		saleAt("ORD-2", "Salad", "Starters", domain.ChannelDineIn, 50.0, 20.0, 1, baseDate),
		saleAt("ORD-3", "Coffee", "Beverages", domain.ChannelDineIn, 10.0, 8.0, 1, baseDate),
	})

	report, err := service.MenuEngineering(nil, "")
	assert.NoError(t, err)

	assert.Equal(t, 50.0, report.Thresholds.Revenue)
	assert.Equal(t, 40.0, report.Thresholds.MarginPercent)
	assert.Equal(t, domain.MedianPolicyFiltered, report.MedianPolicy)
	assert.Len(t, report.Items, 3)

	// Itens ordenados por receita decrescente
	byName := make(map[string]*domain.ItemSummary)
	for _, item := range report.Items {
		byName[item.ItemName] = item
	}

	// Ribeye: receita 100 >= 50, margem 40 >= 40 (comparação inclusiva)
	assert.Equal(t, domain.QuadrantStar, byName["Ribeye"].Quadrant)
	// Salad: receita 50 >= 50, margem 60 >= 40
	assert.Equal(t, domain.QuadrantStar, byName["Salad"].Quadrant)
	// Coffee: receita 10 < 50, margem 20 < 40
	assert.Equal(t, domain.QuadrantDog, byName["Coffee"].Quadrant)

	assert.Equal(t, 2, report.Counts[domain.QuadrantStar])
	assert.Equal(t, 1, report.Counts[domain.QuadrantDog])
}

func TestMenuEngineeringPlowhorseAndPuzzle(t *testing.T) {
	// Quatro itens para cobrir os quatro quadrantes
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "A", "Mains", domain.ChannelDineIn, 100.0, 30.0, 1, baseDate), // receita 100, margem 70%
		saleAt("ORD-2", "B", "Mains", domain.ChannelDineIn, 90.0, 80.0, 1, baseDate),  // receita 90, margem ~11%
		saleAt("ORD-3", "C", "Mains", domain.ChannelDineIn, 10.0, 3.0, 1, baseDate),   // receita 10, margem 70%
		saleAt("ORD-4", "D", "Mains", domain.ChannelDineIn, 8.0, 7.0, 1, baseDate),    // receita 8, margem 12.5%
	})

	report, err := service.MenuEngineering(nil, domain.MedianPolicyFiltered)
	assert.NoError(t, err)

	byName := make(map[string]*domain.ItemSummary)
	for _, item := range report.Items {
		byName[item.ItemName] = item
	}

	assert.Equal(t, domain.QuadrantStar, byName["A"].Quadrant)
	assert.Equal(t, domain.QuadrantPlowhorse, byName["B"].Quadrant)
	assert.Equal(t, domain.QuadrantPuzzle, byName["C"].Quadrant)
	assert.Equal(t, domain.QuadrantDog, byName["D"].Quadrant)
}

func TestMenuEngineeringGlobalPolicy(t *testing.T) {
	// Com a política global as medianas vêm do dataset completo, então um
	// filtro que isola os itens mais fracos não promove nenhum deles
	transactions := []*domain.Transaction{
		saleAt("ORD-1", "Ribeye", "Mains", domain.ChannelDineIn, 200.0, 80.0, 1, baseDate),
		saleAt("ORD-2", "Salmon", "Mains", domain.ChannelDineIn, 150.0, 70.0, 1, baseDate),
		saleAt("ORD-3", "Coffee", "Beverages", domain.ChannelDineIn, 10.0, 8.0, 1, baseDate),
		saleAt("ORD-4", "Tea", "Beverages", domain.ChannelDineIn, 8.0, 7.0, 1, baseDate),
	}

	filters := &domain.AnalyticsFilters{Categories: []string{"Beverages"}}

	service := testService(transactions)

	filtered, err := service.MenuEngineering(filters, domain.MedianPolicyFiltered)
	assert.NoError(t, err)

	global, err := service.MenuEngineering(filters, domain.MedianPolicyGlobal)
	assert.NoError(t, err)

	// Na política filtrada o Coffee vira o melhor item do conjunto
	assert.Equal(t, 9.0, filtered.Thresholds.Revenue)
	assert.NotEqual(t, filtered.Thresholds.Revenue, global.Thresholds.Revenue)

	byNameGlobal := make(map[string]*domain.ItemSummary)
	for _, item := range global.Items {
		byNameGlobal[item.ItemName] = item
	}

	// Contra as medianas globais as bebidas continuam abaixo do corte de receita
	assert.Equal(t, domain.QuadrantDog, byNameGlobal["Coffee"].Quadrant)
	assert.Equal(t, domain.QuadrantDog, byNameGlobal["Tea"].Quadrant)
}

func TestMenuEngineeringNoMatchingData(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, baseDate),
	})

	_, err := service.MenuEngineering(&domain.AnalyticsFilters{Categories: []string{"Desserts"}}, "")
	assert.ErrorIs(t, err, ErrNoMatchingData)
}

func TestMenuEngineeringWithoutCostColumn(t *testing.T) {
	service := degradedService(t, "order_id,order_datetime,item_name,category,channel,unit_price,quantity,waste_quantity,waste_type\n"+
		"ORD-1,2024-03-04 12:00:00,Burger,Mains,dine-in,10.00,1,0,none\n")

	_, err := service.MenuEngineering(nil, "")
	assert.ErrorIs(t, err, ErrCostDataUnavailable)
}

func TestWasteByItem(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 3, baseDate),
		wasteAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
		wasteAt("ORD-3", "Salmon", "Mains", domain.ChannelDineIn, 11.0, domain.WasteTypeError, baseDate),
	})

	report, err := service.Waste(domain.WasteDimensionItem, nil)
	assert.NoError(t, err)

	assert.Len(t, report.Records, 2)
	assert.Equal(t, 15.0, report.TotalWasteCost)

	// Ordenado por custo de desperdício decrescente
	assert.Equal(t, "Salmon", report.Records[0].DimensionValue)
	assert.Equal(t, 11.0, report.Records[0].TotalWasteCost)
	assert.Equal(t, 100.0, report.Records[0].WasteRate)

	assert.Equal(t, "Burger", report.Records[1].DimensionValue)
	assert.Equal(t, 1, report.Records[1].WasteQuantity)
	// 1 descartada sobre 4 movimentadas
	assert.Equal(t, 25.0, report.Records[1].WasteRate)
}

func TestWasteByType(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 8, baseDate),
		wasteAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
		wasteAt("ORD-3", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
	})

	report, err := service.Waste(domain.WasteDimensionType, nil)
	assert.NoError(t, err)

	// Vendas normais não formam grupo na dimensão "type"
	assert.Len(t, report.Records, 1)
	assert.Equal(t, string(domain.WasteTypeSpoilage), report.Records[0].DimensionValue)
	assert.Equal(t, 2, report.Records[0].WasteQuantity)

	// Taxa sobre o total movimentado: 2 de 10
	assert.Equal(t, 20.0, report.Records[0].WasteRate)
}

func TestWasteByChannel(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, baseDate),
		wasteAt("ORD-2", "Burger", "Mains", domain.ChannelDelivery, 4.4, domain.WasteTypeReturn, baseDate),
	})

	report, err := service.Waste(domain.WasteDimensionChannel, nil)
	assert.NoError(t, err)

	assert.Len(t, report.Records, 2)
	assert.Equal(t, "delivery", report.Records[0].DimensionValue)
	assert.Equal(t, 4.4, report.Records[0].TotalWasteCost)
	assert.Equal(t, "dine-in", report.Records[1].DimensionValue)
	assert.Equal(t, 0, report.Records[1].WasteQuantity)
}

func TestWasteByChannelWithoutChannelColumn(t *testing.T) {
	service := degradedService(t, "order_id,order_datetime,item_name,category,unit_price,unit_cost,quantity,waste_quantity,waste_type\n"+
		"ORD-1,2024-03-04 12:00:00,Burger,Mains,10.00,4.00,1,0,none\n")

	_, err := service.Waste(domain.WasteDimensionChannel, nil)
	assert.ErrorIs(t, err, ErrChannelDataUnavailable)
}

func TestTimePatternsByHour(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 4, 12, 15, 0, 0, time.UTC)),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 2, time.Date(2024, 3, 4, 12, 45, 0, 0, time.UTC)),
		saleAt("ORD-3", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)),
	})

	report, err := service.TimePatterns(domain.GranularityHour, nil)
	assert.NoError(t, err)

	// Eixo completo de 24 horas, mesmo sem movimento
	assert.Len(t, report.Buckets, 24)
	assert.Equal(t, "00", report.Buckets[0].Bucket)
	assert.Equal(t, "23", report.Buckets[23].Bucket)

	assert.Equal(t, 30.0, report.Buckets[12].Revenue)
	assert.Equal(t, 3, report.Buckets[12].Quantity)
	assert.Equal(t, 2, report.Buckets[12].Orders)
	assert.Equal(t, 10.0, report.Buckets[19].Revenue)
	assert.Equal(t, 0.0, report.Buckets[3].Revenue)
}

func TestTimePatternsByWeekday(t *testing.T) {
	service := testService([]*domain.Transaction{
		// domingo 2024-03-10 e segunda 2024-03-04
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)),
	})

	report, err := service.TimePatterns(domain.GranularityWeekday, nil)
	assert.NoError(t, err)

	// Ordem cíclica de segunda a domingo, não a ordem de inserção
	assert.Len(t, report.Buckets, 7)
	assert.Equal(t, "Monday", report.Buckets[0].Bucket)
	assert.Equal(t, "Sunday", report.Buckets[6].Bucket)
	assert.Equal(t, 10.0, report.Buckets[0].Revenue)
	assert.Equal(t, 10.0, report.Buckets[6].Revenue)
	assert.Equal(t, 0.0, report.Buckets[2].Revenue)
}

func TestTimePatternsByMonth(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)),
	})

	report, err := service.TimePatterns(domain.GranularityMonth, nil)
	assert.NoError(t, err)

	// Meses em ordem cronológica, apenas os que têm movimento
	assert.Len(t, report.Buckets, 2)
	assert.Equal(t, "2024-01", report.Buckets[0].Bucket)
	assert.Equal(t, "2024-03", report.Buckets[1].Bucket)
}

func TestFiltersAreApplied(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelDelivery, 10.0, 4.0, 1, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)),
		saleAt("ORD-3", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 1, time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)),
	})

	report, err := service.Overview(&domain.AnalyticsFilters{
		StartDate: &start,
		EndDate:   &end,
		Channels:  []domain.Channel{domain.ChannelDineIn},
	}, nil)
	assert.NoError(t, err)

	assert.Equal(t, 10.0, report.TotalRevenue)
	assert.Equal(t, 1, report.OrderCount)
}

// degradedService carrega um CSV sem colunas opcionais para simular o modo degradado
func degradedService(t *testing.T, csv string) *Service {
	t.Helper()

	path := t.TempDir() + "/pos.csv"
	assert.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	store := dataset.NewStore(path)
	assert.NoError(t, store.Load())

	cfg := &config.Config{
		Analytics: config.Analytics{TargetFoodCostPercent: 32.0, MedianPolicy: "filtered"},
	}

	return NewService(cfg, store)
}

func TestMenuEngineeringWasteOnlyItemsAreDogs(t *testing.T) {
	service := testService([]*domain.Transaction{
		wasteAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
		wasteAt("ORD-2", "Salmon", "Mains", domain.ChannelDineIn, 11.0, domain.WasteTypeError, baseDate),
	})

	report, err := service.MenuEngineering(nil, domain.MedianPolicyFiltered)
	assert.NoError(t, err)
	assert.Len(t, report.Items, 2)

	// Itens sem receita não têm margem percentual e caem direto em dog,
	// mesmo com a mediana de receita zerada
	for _, item := range report.Items {
		assert.Nil(t, item.MarginPercent)
		assert.Equal(t, domain.QuadrantDog, item.Quadrant)
	}

	assert.Equal(t, 2, report.Counts[domain.QuadrantDog])
}

func TestMenuEngineeringExcludesNilMarginFromMedians(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 2, baseDate),
		saleAt("ORD-2", "Soda", "Beverages", domain.ChannelDineIn, 4.0, 2.0, 1, baseDate),
		wasteAt("ORD-3", "Salmon", "Mains", domain.ChannelDineIn, 11.0, domain.WasteTypeError, baseDate),
	})

	report, err := service.MenuEngineering(nil, domain.MedianPolicyFiltered)
	assert.NoError(t, err)

	// Mediana de margem só sobre Burger (60%) e Soda (50%); o Salmon sem
	// receita fica fora do corte
	assert.Equal(t, 55.0, report.Thresholds.MarginPercent)

	// Mediana de receita considera os três itens: [20, 4, 0]
	assert.Equal(t, 4.0, report.Thresholds.Revenue)
}

func TestMenuEngineeringRevenueMatchesFilteredSales(t *testing.T) {
	transactions := []*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 2, baseDate),
		saleAt("ORD-2", "Burger", "Mains", domain.ChannelTakeout, 10.0, 4.0, 1, baseDate),
		saleAt("ORD-2", "Salmon", "Mains", domain.ChannelTakeout, 18.0, 7.0, 1, baseDate),
		saleAt("ORD-3", "Soda", "Beverages", domain.ChannelDineIn, 3.0, 0.5, 2, baseDate),
		wasteAt("ORD-4", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
	}
	service := testService(transactions)

	filters := &domain.AnalyticsFilters{Categories: []string{"Mains"}}

	report, err := service.MenuEngineering(filters, domain.MedianPolicyFiltered)
	assert.NoError(t, err)

	// A soma das receitas por item bate com preço x quantidade das vendas
	// filtradas, sem vazamento de outras categorias
	expected := 0.0
	for _, transaction := range transactions {
		if transaction.Category == "Mains" {
			expected += transaction.UnitPrice * float64(transaction.Quantity)
		}
	}
	assert.Equal(t, 48.0, expected)

	total := 0.0
	for _, item := range report.Items {
		assert.Equal(t, "Mains", item.Category)
		total += item.TotalRevenue
	}
	assert.Equal(t, expected, total)
}

func TestWasteTotalsAgreeAcrossDimensions(t *testing.T) {
	service := testService([]*domain.Transaction{
		saleAt("ORD-1", "Burger", "Mains", domain.ChannelDineIn, 10.0, 4.0, 3, baseDate),
		wasteAt("ORD-2", "Burger", "Mains", domain.ChannelDineIn, 4.0, domain.WasteTypeSpoilage, baseDate),
		wasteAt("ORD-3", "Salmon", "Mains", domain.ChannelDelivery, 11.0, domain.WasteTypeError, baseDate),
		wasteAt("ORD-4", "Soda", "Beverages", domain.ChannelTakeout, 0.5, domain.WasteTypeReturn, baseDate),
	})

	dimensions := []domain.WasteDimension{
		domain.WasteDimensionItem,
		domain.WasteDimensionType,
		domain.WasteDimensionChannel,
	}

	// O custo total de desperdício não depende da dimensão de agrupamento
	for _, dimension := range dimensions {
		report, err := service.Waste(dimension, nil)
		assert.NoError(t, err)
		assert.Equal(t, 15.5, report.TotalWasteCost)

		sum := 0.0
		for _, record := range report.Records {
			sum += record.TotalWasteCost
		}
		assert.Equal(t, report.TotalWasteCost, sum)
	}
}
