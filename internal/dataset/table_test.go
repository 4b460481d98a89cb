package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headply/restaurant-analysis/internal/domain"
)

func sampleTransactions() []*domain.Transaction {
	return []*domain.Transaction{
		{
			OrderID:   "ORD-1",
			Timestamp: time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
			ItemName:  "Classic Burger",
			Category:  "Mains",
			Channel:   domain.ChannelDineIn,
			UnitPrice: 14.99,
			Quantity:  1,
		},
		{
			OrderID:   "ORD-2",
			Timestamp: time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC),
			ItemName:  "Coffee",
			Category:  "Beverages",
			Channel:   domain.ChannelDelivery,
			UnitPrice: 3.50,
			Quantity:  2,
		},
		{
			OrderID:   "ORD-3",
			Timestamp: time.Date(2024, 3, 6, 20, 0, 0, 0, time.UTC),
			ItemName:  "Coffee",
			Category:  "Beverages",
			Channel:   domain.ChannelTakeout,
			UnitPrice: 3.50,
			Quantity:  1,
		},
	}
}

func TestFilterByPeriod(t *testing.T) {
	table := newTable("pos.csv", sampleTransactions(), true, true)

	start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	filtered := table.Filter(&domain.AnalyticsFilters{
		StartDate: &start,
		EndDate:   &end,
	})

	// EndDate inclui o dia inteiro
	require.Len(t, filtered, 1)
	assert.Equal(t, "ORD-2", filtered[0].OrderID)
}

func TestFilterByCategoryAndChannel(t *testing.T) {
	table := newTable("pos.csv", sampleTransactions(), true, true)

	filtered := table.Filter(&domain.AnalyticsFilters{
		Categories: []string{"Beverages"},
		Channels:   []domain.Channel{domain.ChannelTakeout},
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, "ORD-3", filtered[0].OrderID)
}

func TestFilterNilReturnsAll(t *testing.T) {
	table := newTable("pos.csv", sampleTransactions(), true, true)

	assert.Len(t, table.Filter(nil), 3)
}

func TestFilterWithoutMatchesIsEmpty(t *testing.T) {
	table := newTable("pos.csv", sampleTransactions(), true, true)

	filtered := table.Filter(&domain.AnalyticsFilters{
		Categories: []string{"Desserts"},
	})

	assert.Empty(t, filtered)
}

func TestStatusDescribesDataset(t *testing.T) {
	table := newTable("pos.csv", sampleTransactions(), true, false)

	status := table.Status()

	assert.True(t, status.Loaded)
	assert.Equal(t, "pos.csv", status.Path)
	assert.Equal(t, 3, status.Rows)
	assert.Equal(t, "2024-03-04", status.StartDate)
	assert.Equal(t, "2024-03-06", status.EndDate)
	assert.True(t, status.HasCost)
	assert.False(t, status.HasChannel)
	assert.Equal(t, []string{"Beverages", "Mains"}, status.Categories)
	assert.Equal(t, 2, status.Items)
}

func TestStoreTableBeforeLoad(t *testing.T) {
	store := NewStore("pos.csv")

	_, err := store.Table()

	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStoreReplaceSwapsTable(t *testing.T) {
	store := NewStore("pos.csv")

	store.Replace(sampleTransactions())

	table, err := store.Table()
	require.NoError(t, err)
	assert.Len(t, table.All(), 3)
	assert.True(t, table.HasItem("Coffee"))
	assert.False(t, table.HasItem("Tiramisu"))
}
