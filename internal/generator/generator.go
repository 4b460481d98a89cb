package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/domain"
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Config controla o gerador de dados sintéticos de PDV
type Config struct {
	Seed             int64
	StartDate        time.Time
	EndDate          time.Time
	BaseOrdersPerDay int
	RainyDayChance   float64
	Catalog          []domain.MenuItem
}

// Generator produz transações sintéticas determinísticas a partir de uma seed
type Generator struct {
	cfg        Config
	rng        *rand.Rand
	byCategory map[string][]domain.MenuItem
	totalDays  float64
}

func New(cfg Config) (*Generator, error) {
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, errors.New("período inválido: data final anterior à data inicial")
	}

	if cfg.BaseOrdersPerDay <= 0 {
		cfg.BaseOrdersPerDay = 120
	}

	if len(cfg.Catalog) == 0 {
		cfg.Catalog = DefaultCatalog
	}

	byCategory := make(map[string][]domain.MenuItem)
	for _, item := range cfg.Catalog {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	return &Generator{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		byCategory: byCategory,
		totalDays:  cfg.EndDate.Sub(cfg.StartDate).Hours()/24 + 1,
	}, nil
}

// Generate percorre o período dia a dia e monta os pedidos de cada dia
func (g *Generator) Generate() []*domain.Transaction {
	var transactions []*domain.Transaction

	for day := g.cfg.StartDate; !day.After(g.cfg.EndDate); day = day.AddDate(0, 0, 1) {
		rainy := g.rng.Float64() < g.cfg.RainyDayChance

		orders := g.ordersForDay(day, rainy)
		for i := 0; i < orders; i++ {
			orderID := g.newOrderID()
			orderTime := g.orderTime(day)

			transactions = append(transactions, g.buildOrder(orderID, orderTime)...)
		}
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.Before(transactions[j].Timestamp)
	})

	logrus.WithFields(logrus.Fields{
		"transacoes": len(transactions),
		"seed":       g.cfg.Seed,
	}).Info("Geração de dados sintéticos concluída")

	return transactions
}

// newOrderID sorteia o identificador pelo rng semeado para manter a geração
// reprodutível com a mesma seed
func (g *Generator) newOrderID() string {
	id := make([]byte, 10)
	for i := range id {
		id[i] = orderIDAlphabet[g.rng.Intn(len(orderIDAlphabet))]
	}

	return "ORD-" + string(id)
}

// ordersForDay aplica os multiplicadores de dia da semana, sazonalidade, feriado e chuva
func (g *Generator) ordersForDay(day time.Time, rainy bool) int {
	multiplier := g.weekdayMultiplier(day.Weekday()) * g.seasonalMultiplier(day.Month())

	if isHoliday(day) {
		multiplier *= 1.5
	}

	if rainy {
		multiplier *= 0.85
	}

	orders := int(float64(g.cfg.BaseOrdersPerDay) * multiplier)
	if orders < 1 {
		orders = 1
	}

	return orders
}

func (g *Generator) weekdayMultiplier(weekday time.Weekday) float64 {
	switch weekday {
	case time.Friday, time.Saturday:
		return g.uniform(1.4, 1.6)
	case time.Sunday:
		return g.uniform(1.2, 1.4)
	default:
		return g.uniform(0.8, 1.0)
	}
}

func (g *Generator) seasonalMultiplier(month time.Month) float64 {
	switch {
	case month == time.January:
		return g.uniform(0.7, 0.85)
	case month >= time.June && month <= time.August:
		return g.uniform(1.15, 1.3)
	case month == time.November || month == time.December:
		return g.uniform(1.1, 1.25)
	default:
		return g.uniform(0.95, 1.05)
	}
}

// orderTime sorteia o horário do pedido com picos de almoço e jantar
func (g *Generator) orderTime(day time.Time) time.Time {
	weights := make([]float64, 24)
	total := 0.0

	for hour := 0; hour < 24; hour++ {
		weights[hour] = g.hourWeight(hour)
		total += weights[hour]
	}

	draw := g.rng.Float64() * total
	hour := 23

	for h := 0; h < 24; h++ {
		draw -= weights[h]
		if draw <= 0 {
			hour = h
			break
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), g.rng.Intn(60), 0, day.Location())
}

func (g *Generator) hourWeight(hour int) float64 {
	switch {
	case hour >= 11 && hour <= 13:
		return g.uniform(2.5, 3.5)
	case hour >= 18 && hour <= 20:
		return g.uniform(3.0, 4.0)
	case hour >= 14 && hour <= 17:
		return g.uniform(1.0, 1.5)
	case hour == 21 || hour == 22:
		return g.uniform(1.5, 2.0)
	case hour >= 7 && hour <= 10:
		return g.uniform(0.5, 1.0)
	default:
		return g.uniform(0.05, 0.15)
	}
}

// buildOrder compõe os itens do pedido: prato principal e bebida sempre,
// entrada, acompanhamento, sobremesa e menu infantil por probabilidade
func (g *Generator) buildOrder(orderID string, orderTime time.Time) []*domain.Transaction {
	channel := g.pickChannel()

	var items []domain.MenuItem
	items = append(items, g.pickItem(CategoryMains))
	items = append(items, g.pickItem(CategoryBeverages))

	if g.rng.Float64() < 0.40 {
		items = append(items, g.pickItem(CategoryStarters))
	}

	if g.rng.Float64() < 0.30 {
		items = append(items, g.pickItem(CategorySides))
	}

	if g.rng.Float64() < 0.25 {
		items = append(items, g.pickItem(CategoryDesserts))
	}

	if g.rng.Float64() < 0.15 {
		items = append(items, g.pickItem(CategoryKidsMenu))
	}

	transactions := make([]*domain.Transaction, 0, len(items))
	for _, item := range items {
		transactions = append(transactions, g.buildLine(orderID, orderTime, channel, item))
	}

	return transactions
}

func (g *Generator) pickChannel() domain.Channel {
	draw := g.rng.Float64()

	switch {
	case draw < 0.60:
		return domain.ChannelDineIn
	case draw < 0.85:
		return domain.ChannelTakeout
	default:
		return domain.ChannelDelivery
	}
}

func (g *Generator) pickItem(category string) domain.MenuItem {
	items := g.byCategory[category]
	return items[g.rng.Intn(len(items))]
}

// buildLine monta uma linha do pedido, já decidindo se a unidade vira desperdício
func (g *Generator) buildLine(orderID string, orderTime time.Time, channel domain.Channel, item domain.MenuItem) *domain.Transaction {
	price := g.inflatedPrice(item.BasePrice, orderTime)

	cost := item.BaseCost
	if channel == domain.ChannelDelivery {
		// embalagem e logística encarecem o custo do delivery
		cost *= 1.10
	}

	transaction := &domain.Transaction{
		OrderID:       orderID,
		Timestamp:     orderTime,
		ItemName:      item.Name,
		Category:      item.Category,
		Channel:       channel,
		UnitPrice:     round2(price),
		UnitCost:      round2(cost),
		Quantity:      1,
		WasteQuantity: 0,
		WasteType:     domain.WasteTypeNone,
	}

	if wasteType, wasted := g.drawWaste(item); wasted {
		transaction.Quantity = 0
		transaction.WasteQuantity = 1
		transaction.WasteType = wasteType
	}

	return transaction
}

// inflatedPrice aplica uma inflação anual de 5% a 8% distribuída pelo período
func (g *Generator) inflatedPrice(basePrice float64, orderTime time.Time) float64 {
	elapsed := orderTime.Sub(g.cfg.StartDate).Hours() / 24
	annualRate := g.uniform(0.05, 0.08)

	return basePrice * (1 + annualRate*elapsed/365)
}

func (g *Generator) drawWaste(item domain.MenuItem) (domain.WasteType, bool) {
	rate := wasteRate(item)
	if g.rng.Float64() >= rate {
		return domain.WasteTypeNone, false
	}

	draw := g.rng.Float64()

	switch {
	case draw < 0.45:
		return domain.WasteTypeError, true
	case draw < 0.80:
		return domain.WasteTypeReturn, true
	default:
		return domain.WasteTypeSpoilage, true
	}
}

func wasteRate(item domain.MenuItem) float64 {
	// frutos do mar estragam mais rápido
	if item.Name == "Grilled Salmon" || item.Name == "Fish and Chips" || item.Name == "Calamari" {
		return 0.025
	}

	switch item.Category {
	case CategoryMains:
		return 0.015
	case CategoryStarters, CategoryDesserts:
		return 0.012
	case CategorySides:
		return 0.010
	default:
		return 0.005
	}
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round2(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}

var holidays = map[string]bool{
	"01-01": true, // Ano Novo
	"02-14": true, // Dia dos Namorados
	"05-05": true,
	"07-04": true, // Independência
	"10-31": true,
	"11-28": true, // Ação de Graças (aproximado)
	"12-24": true,
	"12-25": true, // Natal
	"12-31": true,
}

func isHoliday(day time.Time) bool {
	return holidays[day.Format("01-02")]
}
