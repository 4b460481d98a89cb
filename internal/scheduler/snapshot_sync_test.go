package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/headply/restaurant-analysis/infrastructure/repository/mocks"
	"github.com/headply/restaurant-analysis/internal/domain"
)

// fakeAnalyzer devolve um overview fixo ou um erro, registrando os filtros recebidos
type fakeAnalyzer struct {
	overview *domain.OverviewReport
	err      error
	filters  []*domain.AnalyticsFilters
}

func (f *fakeAnalyzer) Overview(filters *domain.AnalyticsFilters, targetOverride *float64) (*domain.OverviewReport, error) {
	f.filters = append(f.filters, filters)
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

func TestSnapshotSyncService_processSnapshotDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		analyzer *fakeAnalyzer
		setup    func(repo *mocks.MockReportSnapshotRepository)
		dates    []time.Time
		expected int
	}{
		{
			name: "Deve salvar um snapshot por data processada",
			analyzer: &fakeAnalyzer{
				overview: &domain.OverviewReport{TotalRevenue: 1500.0, OrderCount: 42},
			},
			setup: func(repo *mocks.MockReportSnapshotRepository) {
				repo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					DoAndReturn(func(snapshot *domain.DailyReportSnapshot) error {
						assert.NotNil(t, snapshot.Overview)
						assert.Equal(t, 1500.0, snapshot.Overview.TotalRevenue)
						assert.Nil(t, snapshot.Overview.Filters)
						return nil
					}).
					Times(2)
			},
			dates: []time.Time{
				time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
				time.Date(2024, 3, 3, 10, 30, 0, 0, time.UTC),
			},
			expected: 2,
		},
		{
			name: "Erro na análise não interrompe as demais datas",
			analyzer: &fakeAnalyzer{
				err: errors.New("dataset não carregado"),
			},
			setup: func(repo *mocks.MockReportSnapshotRepository) {
				// Nenhum snapshot deve ser salvo
			},
			dates: []time.Time{
				time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
			},
			expected: 0,
		},
		{
			name: "Erro ao salvar conta como data não sincronizada",
			analyzer: &fakeAnalyzer{
				overview: &domain.OverviewReport{TotalRevenue: 100.0},
			},
			setup: func(repo *mocks.MockReportSnapshotRepository) {
				repo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					Return(errors.New("conexão recusada")).
					Times(1)
			},
			dates: []time.Time{
				time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockReportSnapshotRepository(ctrl)
			tt.setup(mockRepo)

			service := &SnapshotSyncService{
				config:       SnapshotSyncConfig{LookbackDays: len(tt.dates), SyncEnabled: true},
				analyzer:     tt.analyzer,
				snapshotRepo: mockRepo,
			}

			saved := service.processSnapshotDates(tt.dates)
			assert.Equal(t, tt.expected, saved)
		})
	}
}

func TestSnapshotSyncService_processSnapshotDateNormalizesDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := &fakeAnalyzer{overview: &domain.OverviewReport{}}

	mockRepo := mocks.NewMockReportSnapshotRepository(ctrl)
	mockRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(snapshot *domain.DailyReportSnapshot) error {
			assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), snapshot.Date)
			return nil
		})

	service := &SnapshotSyncService{
		analyzer:     analyzer,
		snapshotRepo: mockRepo,
	}

	err := service.processSnapshotDate(time.Date(2024, 3, 4, 17, 45, 12, 0, time.UTC))
	assert.NoError(t, err)

	// O filtro do dia cobre exatamente a data processada
	assert.Len(t, analyzer.filters, 1)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), *analyzer.filters[0].StartDate)
	assert.Equal(t, *analyzer.filters[0].StartDate, *analyzer.filters[0].EndDate)
}

func TestSnapshotSyncService_getDatesToProcess(t *testing.T) {
	service := &SnapshotSyncService{
		config: SnapshotSyncConfig{LookbackDays: 3},
	}

	dates := service.getDatesToProcess()
	assert.Len(t, dates, 3)

	// Começa em ontem e anda para trás
	yesterday := time.Now().AddDate(0, 0, -1)
	assert.Equal(t, yesterday.Format(time.DateOnly), dates[0].Format(time.DateOnly))
	assert.True(t, dates[1].Before(dates[0]))
	assert.True(t, dates[2].Before(dates[1]))
}
