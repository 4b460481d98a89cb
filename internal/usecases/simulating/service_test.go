package simulating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/usecases/analyzing"
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

	return NewService(cfg, analyzing.NewService(cfg, store))
}

func burgerHistory(quantity int) []*domain.Transaction {
	timestamp := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	return []*domain.Transaction{
		{
			OrderID:   "ORD-1",
			Timestamp: timestamp,
			ItemName:  "Classic Burger",
			Category:  "Mains",
			Channel:   domain.ChannelDineIn,
			UnitPrice: 10.0,
			UnitCost:  4.0,
			Quantity:  quantity,
			WasteType: domain.WasteTypeNone,
		},
		{
			OrderID:   "ORD-2",
			Timestamp: timestamp,
			ItemName:  "Coffee",
			Category:  "Beverages",
			Channel:   domain.ChannelDineIn,
			UnitPrice: 3.0,
			UnitCost:  1.5,
			Quantity:  10,
			WasteType: domain.WasteTypeNone,
		},
	}
}

func TestSimulatePrice(t *testing.T) {
	service := testService(burgerHistory(100))

	elasticity := -1.5
	impact, err := service.SimulatePrice(&domain.PriceSimulationRequest{
		ItemName:   "Classic Burger",
		NewPrice:   12.0,
		Elasticity: &elasticity,
	})
	assert.NoError(t, err)

	// Aumento de 20% com elasticidade -1.5: volume cai 30%
	assert.Equal(t, 10.0, impact.CurrentPrice)
	assert.Equal(t, 20.0, impact.PriceChangePct)
	assert.Equal(t, 100, impact.CurrentQuantity)
	assert.Equal(t, 70.0, impact.ProjectedQuantity)

	assert.Equal(t, 1000.0, impact.CurrentRevenue)
	assert.Equal(t, 840.0, impact.ProjectedRevenue)

	// Margem atual: (10-4)x100 = 600; projetada: (12-4)x70 = 560
	assert.Equal(t, 600.0, impact.CurrentMargin)
	assert.Equal(t, 560.0, impact.ProjectedMargin)
	assert.Equal(t, -40.0, impact.NetMarginImpact)
}

func TestSimulatePriceUsesDefaultElasticity(t *testing.T) {
	service := testService(burgerHistory(100))

	impact, err := service.SimulatePrice(&domain.PriceSimulationRequest{
		ItemName: "Classic Burger",
		NewPrice: 12.0,
	})
	assert.NoError(t, err)

	assert.Equal(t, -1.5, impact.Elasticity)
	assert.Equal(t, 70.0, impact.ProjectedQuantity)
}

func TestSimulatePriceFloorsQuantityAtZero(t *testing.T) {
	service := testService(burgerHistory(100))

	elasticity := -1.5
	impact, err := service.SimulatePrice(&domain.PriceSimulationRequest{
		ItemName:   "Classic Burger",
		NewPrice:   20.0, // aumento de 100%: o modelo extrapolaria para -50 unidades
		Elasticity: &elasticity,
	})
	assert.NoError(t, err)

	assert.Equal(t, 0.0, impact.ProjectedQuantity)
	assert.Equal(t, 0.0, impact.ProjectedRevenue)
	assert.Equal(t, 0.0, impact.ProjectedMargin)
}

func TestSimulatePriceReclassifiesQuadrant(t *testing.T) {
	service := testService(burgerHistory(100))

	elasticity := -1.5
	impact, err := service.SimulatePrice(&domain.PriceSimulationRequest{
		ItemName:   "Classic Burger",
		NewPrice:   20.0,
		Elasticity: &elasticity,
	})
	assert.NoError(t, err)

	// Com volume projetado zero a receita cai abaixo do corte de mediana
	assert.Equal(t, domain.QuadrantStar, impact.CurrentQuadrant)
	assert.NotEqual(t, domain.QuadrantStar, impact.ProjectedQuadrant)
}

func TestSimulatePriceValidations(t *testing.T) {
	service := testService(burgerHistory(100))

	tests := []struct {
		name     string
		request  *domain.PriceSimulationRequest
		expected error
	}{
		{
			name:     "Preço inválido deve retornar erro",
			request:  &domain.PriceSimulationRequest{ItemName: "Classic Burger", NewPrice: 0},
			expected: ErrInvalidPrice,
		},
		{
			name:     "Item inexistente deve retornar erro",
			request:  &domain.PriceSimulationRequest{ItemName: "Pizza", NewPrice: 15.0},
			expected: ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SimulatePrice(tt.request)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
