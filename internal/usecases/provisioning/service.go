package provisioning

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/generator"
)

// Provisioner gerencia o ciclo de vida do dataset em memória
type Provisioner interface {
	Status() *domain.DatasetStatus
	Generate(request *domain.DatasetGenerateRequest) (*domain.DatasetStatus, error)
	Reload() (*domain.DatasetStatus, error)
}

type Service struct {
	cfg   *config.Config
	store *dataset.Store
}

func NewService(cfg *config.Config, store *dataset.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: store,
	}
}

// Status descreve o dataset corrente; com nada carregado, retorna apenas o
// caminho configurado
func (s *Service) Status() *domain.DatasetStatus {
	table, err := s.store.Table()
	if err != nil {
		return &domain.DatasetStatus{
			Loaded: false,
			Path:   s.store.Path(),
		}
	}

	return table.Status()
}

// Generate produz um novo dataset sintético, grava o CSV em disco e substitui
// a tabela em memória. Parâmetros ausentes na requisição usam a configuração.
func (s *Service) Generate(request *domain.DatasetGenerateRequest) (*domain.DatasetStatus, error) {
	genConfig, err := s.generatorConfig(request)
	if err != nil {
		return nil, err
	}

	gen, err := generator.New(genConfig)
	if err != nil {
		return nil, err
	}

	transactions := gen.Generate()

	if err := dataset.WriteCSV(s.store.Path(), transactions); err != nil {
		return nil, errors.Wrap(err, "falha ao gravar o CSV gerado")
	}

	s.store.Replace(transactions)

	logrus.WithFields(logrus.Fields{
		"execution_id": newExecutionID(),
		"path":         s.store.Path(),
		"rows":         len(transactions),
		"seed":         genConfig.Seed,
	}).Info("Dataset sintético regenerado")

	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	return table.Status(), nil
}

// newExecutionID identifica cada regeneração nos logs para correlacionar
// execuções concorrentes
func newExecutionID() string {
	id, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		return "desconhecido"
	}

	return id
}

// Reload relê o arquivo CSV do disco e substitui a tabela corrente
func (s *Service) Reload() (*domain.DatasetStatus, error) {
	if err := s.store.Load(); err != nil {
		return nil, err
	}

	table, err := s.store.Table()
	if err != nil {
		return nil, err
	}

	return table.Status(), nil
}

// generatorConfig combina a configuração da aplicação com os overrides da
// requisição
func (s *Service) generatorConfig(request *domain.DatasetGenerateRequest) (generator.Config, error) {
	if request == nil {
		request = &domain.DatasetGenerateRequest{}
	}

	genConfig := generator.Config{
		Seed:             s.cfg.Generator.Seed,
		BaseOrdersPerDay: s.cfg.Generator.BaseOrdersPerDay,
		RainyDayChance:   s.cfg.Generator.RainyDayChance,
	}

	if request.Seed != nil {
		genConfig.Seed = *request.Seed
	}
	if request.BaseOrdersPerDay != nil {
		genConfig.BaseOrdersPerDay = *request.BaseOrdersPerDay
	}
	if request.RainyDayChance != nil {
		genConfig.RainyDayChance = *request.RainyDayChance
	}

	startRaw := request.StartDate
	if startRaw == "" {
		startRaw = s.cfg.Generator.StartDate
	}
	endRaw := request.EndDate
	if endRaw == "" {
		endRaw = s.cfg.Generator.EndDate
	}

	var err error
	genConfig.StartDate, genConfig.EndDate, err = resolvePeriod(startRaw, endRaw)
	if err != nil {
		return generator.Config{}, err
	}

	return genConfig, nil
}

// resolvePeriod converte as datas em texto; sem datas configuradas, gera o
// último ano encerrado em ontem
func resolvePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" && endRaw == "" {
		yesterday := time.Now().AddDate(0, 0, -1)
		end := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
		return end.AddDate(-1, 0, 1), end, nil
	}

	start, err := time.Parse(time.DateOnly, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "data inicial do gerador inválida")
	}

	end, err := time.Parse(time.DateOnly, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "data final do gerador inválida")
	}

	return start, end, nil
}
