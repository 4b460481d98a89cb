package repository

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/headply/restaurant-analysis/internal/domain"
)

// fakeSnapshotRow simula o Scan do driver, que entrega colunas date e
// timestamp como time.Time
type fakeSnapshotRow struct {
	id        int64
	date      time.Time
	overview  []byte
	createdAt time.Time
	updatedAt time.Time
}

func (f fakeSnapshotRow) Scan(dest ...interface{}) error {
	if len(dest) != 5 {
		return fmt.Errorf("esperados 5 destinos, recebidos %d", len(dest))
	}

	*(dest[0].(*int64)) = f.id

	// A coluna date chega como time.Time; um destino string quebraria o scan
	datePtr, ok := dest[1].(*time.Time)
	if !ok {
		return fmt.Errorf("destino da coluna date deve ser *time.Time, recebido %T", dest[1])
	}
	*datePtr = f.date

	*(dest[2].(*[]byte)) = f.overview
	*(dest[3].(*time.Time)) = f.createdAt
	*(dest[4].(*time.Time)) = f.updatedAt

	return nil
}

func TestScanSnapshotReadsDateAsTime(t *testing.T) {
	repo := &reportSnapshotRepository{}

	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	overview, err := json.Marshal(&domain.OverviewReport{TotalRevenue: 1250.50})
	assert.NoError(t, err)

	row := fakeSnapshotRow{
		id:        7,
		date:      date,
		overview:  overview,
		createdAt: date.Add(24 * time.Hour),
		updatedAt: date.Add(25 * time.Hour),
	}

	snapshot, err := repo.scanSnapshot(row)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), snapshot.ID)
	assert.Equal(t, date, snapshot.Date)
	assert.NotNil(t, snapshot.Overview)
	assert.Equal(t, 1250.50, snapshot.Overview.TotalRevenue)
}

func TestScanSnapshotWithoutOverview(t *testing.T) {
	repo := &reportSnapshotRepository{}

	row := fakeSnapshotRow{
		id:   3,
		date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	snapshot, err := repo.scanSnapshot(row)
	assert.NoError(t, err)
	assert.Nil(t, snapshot.Overview)
}
