package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/headply/restaurant-analysis/internal/domain"
)

func testConfig() Config {
	return Config{
		Seed:             42,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		BaseOrdersPerDay: 40,
		RainyDayChance:   0.15,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := New(testConfig())
	assert.NoError(t, err)

	second, err := New(testConfig())
	assert.NoError(t, err)

	firstRun := first.Generate()
	secondRun := second.Generate()

	assert.NotEmpty(t, firstRun)
	assert.Equal(t, len(firstRun), len(secondRun))

	for i := range firstRun {
		assert.Equal(t, firstRun[i], secondRun[i])
	}
}

func TestGenerateRespectsPeriod(t *testing.T) {
	cfg := testConfig()

	g, err := New(cfg)
	assert.NoError(t, err)

	for _, transaction := range g.Generate() {
		assert.False(t, transaction.Timestamp.Before(cfg.StartDate))
		assert.True(t, transaction.Timestamp.Before(cfg.EndDate.AddDate(0, 0, 1)))
	}
}

func TestGenerateTransactionsAreConsistent(t *testing.T) {
	g, err := New(testConfig())
	assert.NoError(t, err)

	transactions := g.Generate()

	sawWaste := false
	for _, transaction := range transactions {
		assert.NotEmpty(t, transaction.OrderID)
		assert.NotEmpty(t, transaction.ItemName)
		assert.Greater(t, transaction.UnitPrice, 0.0)
		assert.Greater(t, transaction.UnitCost, 0.0)

		_, err := domain.ParseChannel(string(transaction.Channel))
		assert.NoError(t, err)

		if transaction.WasteQuantity > 0 {
			sawWaste = true
			assert.Equal(t, 0, transaction.Quantity)
			assert.NotEqual(t, domain.WasteTypeNone, transaction.WasteType)
		} else {
			assert.Equal(t, 1, transaction.Quantity)
			assert.Equal(t, domain.WasteTypeNone, transaction.WasteType)
		}
	}

	assert.True(t, sawWaste, "um mês de dados deve conter desperdício")
}

func TestGenerateOrdersAlwaysHaveMainAndBeverage(t *testing.T) {
	g, err := New(testConfig())
	assert.NoError(t, err)

	byOrder := make(map[string]map[string]bool)
	for _, transaction := range g.Generate() {
		if byOrder[transaction.OrderID] == nil {
			byOrder[transaction.OrderID] = make(map[string]bool)
		}

		byOrder[transaction.OrderID][transaction.Category] = true
	}

	for orderID, categories := range byOrder {
		assert.True(t, categories[CategoryMains], "pedido %s sem prato principal", orderID)
		assert.True(t, categories[CategoryBeverages], "pedido %s sem bebida", orderID)
	}
}

func TestNewRejectsInvalidPeriod(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate, cfg.EndDate = cfg.EndDate, cfg.StartDate

	_, err := New(cfg)
	assert.Error(t, err)
}
