package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headply/restaurant-analysis/internal/domain"
)

const fullCSV = `order_id,order_datetime,item_name,category,channel,unit_price,unit_cost,quantity,waste_quantity,waste_type
ORD-1,2024-03-04 12:15:00,Classic Burger,Mains,dine-in,14.99,5.20,1,0,
ORD-1,2024-03-04 12:15:00,Coffee,Beverages,dine-in,3.50,0.80,1,0,
ORD-2,2024-03-04 19:40:00,Grilled Salmon,Mains,delivery,22.50,9.10,0,1,spoilage
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pos.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadCSVParsesAllColumns(t *testing.T) {
	table, err := LoadCSV(writeTempCSV(t, fullCSV))
	require.NoError(t, err)

	assert.True(t, table.HasCost())
	assert.True(t, table.HasChannel())
	require.Len(t, table.All(), 3)

	first := table.All()[0]
	assert.Equal(t, "ORD-1", first.OrderID)
	assert.Equal(t, "Classic Burger", first.ItemName)
	assert.Equal(t, "Mains", first.Category)
	assert.Equal(t, domain.ChannelDineIn, first.Channel)
	assert.Equal(t, 14.99, first.UnitPrice)
	assert.Equal(t, 5.20, first.UnitCost)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, time.Date(2024, 3, 4, 12, 15, 0, 0, time.UTC), first.Timestamp)

	waste := table.All()[2]
	assert.Equal(t, 0, waste.Quantity)
	assert.Equal(t, 1, waste.WasteQuantity)
	assert.Equal(t, domain.WasteTypeSpoilage, waste.WasteType)
}

func TestLoadCSVWithoutOptionalColumns(t *testing.T) {
	csvData := `order_id,order_datetime,item_name,category,unit_price,quantity,waste_quantity,waste_type
ORD-1,2024-03-04 12:15:00,Classic Burger,Mains,14.99,1,0,
`

	table, err := LoadCSV(writeTempCSV(t, csvData))
	require.NoError(t, err)

	assert.False(t, table.HasCost())
	assert.False(t, table.HasChannel())
	require.Len(t, table.All(), 1)
	assert.Zero(t, table.All()[0].UnitCost)
	assert.Empty(t, table.All()[0].Channel)
}

func TestLoadCSVMissingRequiredColumn(t *testing.T) {
	csvData := `order_id,order_datetime,item_name,unit_price,quantity,waste_quantity,waste_type
ORD-1,2024-03-04 12:15:00,Classic Burger,14.99,1,0,
`

	_, err := LoadCSV(writeTempCSV(t, csvData))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestLoadCSVInvalidRow(t *testing.T) {
	csvData := `order_id,order_datetime,item_name,category,unit_price,quantity,waste_quantity,waste_type
ORD-1,2024-03-04 12:15:00,Classic Burger,Mains,abc,1,0,
`

	_, err := LoadCSV(writeTempCSV(t, csvData))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_price")
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pos.csv")

	transactions := []*domain.Transaction{
		{
			OrderID:   "ORD-9",
			Timestamp: time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC),
			ItemName:  "Tiramisu",
			Category:  "Desserts",
			Channel:   domain.ChannelTakeout,
			UnitPrice: 7.5,
			UnitCost:  2.25,
			Quantity:  2,
		},
	}

	require.NoError(t, WriteCSV(path, transactions))

	table, err := LoadCSV(path)
	require.NoError(t, err)

	require.Len(t, table.All(), 1)
	tx := table.All()[0]
	assert.Equal(t, "ORD-9", tx.OrderID)
	assert.Equal(t, "Tiramisu", tx.ItemName)
	assert.Equal(t, domain.ChannelTakeout, tx.Channel)
	assert.Equal(t, 7.5, tx.UnitPrice)
	assert.Equal(t, 2.25, tx.UnitCost)
	assert.Equal(t, 2, tx.Quantity)
}
