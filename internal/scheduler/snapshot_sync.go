package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/infrastructure/repository"
	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/domain"
)

// OverviewAnalyzer é o recorte do serviço de análises usado pela sincronização
type OverviewAnalyzer interface {
	Overview(filters *domain.AnalyticsFilters, targetOverride *float64) (*domain.OverviewReport, error)
}

// SnapshotSyncConfig representa a configuração do agendador de snapshots diários
type SnapshotSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// SnapshotSyncService gerencia o agendamento e a materialização dos snapshots
// diários de KPIs no banco de dados
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	analyzer            OverviewAnalyzer
	snapshotRepo        repository.ReportSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewSnapshotSyncService cria uma nova instância do serviço de sincronização de snapshots
func NewSnapshotSyncService(
	analyzer OverviewAnalyzer,
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *SnapshotSyncService {
	// Criar a configuração com base na config global
	syncConfig := SnapshotSyncConfig{
		CronSchedule: appConfig.SnapshotSync.CronSchedule,
		LookbackDays: appConfig.SnapshotSync.LookbackDays,
		SyncEnabled:  appConfig.SnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots diários carregada")

	return &SnapshotSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		analyzer:     analyzer,
		snapshotRepo: snapshotRepo,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots diários desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots diários")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots diários: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots diários")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshots materializa um snapshot de KPIs para cada dia da janela de lookback
func (s *SnapshotSyncService) syncSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	dates := s.getDatesToProcess()

	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1].Format(time.DateOnly),
		"end_date":   dates[0].Format(time.DateOnly),
	}).Info("Iniciando sincronização de snapshots diários")

	saved := s.processSnapshotDates(dates)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"days":     s.config.LookbackDays,
		"saved":    saved,
	}).Info("Sincronização de snapshots diários concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *SnapshotSyncService) getDatesToProcess() []time.Time {
	days := s.config.LookbackDays
	if days < 1 {
		days = 1
	}

	dates := make([]time.Time, days)
	for i := 0; i < days; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i-1) // Começar de ontem e ir para trás
	}
	return dates
}

// processSnapshotDates calcula e persiste o snapshot de cada data, devolvendo
// quantos foram salvos
func (s *SnapshotSyncService) processSnapshotDates(dates []time.Time) int {
	saved := 0

	for _, date := range dates {
		if err := s.processSnapshotDate(date); err != nil {
			logrus.WithError(err).WithField("date", date.Format(time.DateOnly)).
				Error("Erro ao sincronizar snapshot diário")
			continue
		}
		saved++
	}

	return saved
}

// processSnapshotDate calcula os KPIs de um dia e faz o upsert no banco
func (s *SnapshotSyncService) processSnapshotDate(date time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	filters := &domain.AnalyticsFilters{
		StartDate: &day,
		EndDate:   &day,
	}

	overview, err := s.analyzer.Overview(filters, nil)
	if err != nil {
		return fmt.Errorf("erro ao calcular overview do dia: %w", err)
	}

	// O filtro ativo não pertence ao snapshot persistido
	overview.Filters = nil

	snapshot := &domain.DailyReportSnapshot{
		Date:     day,
		Overview: overview,
	}

	if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
		return fmt.Errorf("erro ao salvar snapshot no banco de dados: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"date":    day.Format(time.DateOnly),
		"revenue": overview.TotalRevenue,
		"orders":  overview.OrderCount,
	}).Info("Snapshot diário salvo com sucesso")

	return nil
}

// TriggerManualSync inicia manualmente uma sincronização de snapshots
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots diários")
	go s.syncSnapshots()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
