package dataset

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/domain"
)

// ErrNotLoaded indica que nenhum dataset foi carregado em memória
var ErrNotLoaded = errors.New("dataset não carregado")

// Table é a tabela imutável de transações carregada em memória.
// Todas as análises são recalculadas sobre ela a cada requisição; não há
// estado incremental nem cache de agregações.
type Table struct {
	transactions []*domain.Transaction
	path         string
	loadedAt     time.Time
	hasCost      bool
	hasChannel   bool
	categories   []string
	items        map[string]bool
	minDate      time.Time
	maxDate      time.Time
}

func newTable(path string, transactions []*domain.Transaction, hasCost, hasChannel bool) *Table {
	table := &Table{
		transactions: transactions,
		path:         path,
		loadedAt:     time.Now(),
		hasCost:      hasCost,
		hasChannel:   hasChannel,
		items:        make(map[string]bool),
	}

	categorySet := make(map[string]bool)
	for i, tx := range transactions {
		categorySet[tx.Category] = true
		table.items[tx.ItemName] = true

		if i == 0 || tx.Timestamp.Before(table.minDate) {
			table.minDate = tx.Timestamp
		}
		if i == 0 || tx.Timestamp.After(table.maxDate) {
			table.maxDate = tx.Timestamp
		}
	}

	table.categories = make([]string, 0, len(categorySet))
	for category := range categorySet {
		table.categories = append(table.categories, category)
	}
	sort.Strings(table.categories)

	return table
}

// Filter retorna as transações que satisfazem os filtros. Resultado vazio é
// um caso válido, não um erro.
func (t *Table) Filter(filters *domain.AnalyticsFilters) []*domain.Transaction {
	if filters == nil {
		return t.transactions
	}

	filtered := make([]*domain.Transaction, 0, len(t.transactions))
	for _, tx := range t.transactions {
		if filters.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}

	return filtered
}

// All retorna todas as transações do dataset
func (t *Table) All() []*domain.Transaction {
	return t.transactions
}

// HasCost indica se a coluna opcional unit_cost estava presente na carga
func (t *Table) HasCost() bool {
	return t.hasCost
}

// HasChannel indica se a coluna opcional channel estava presente na carga
func (t *Table) HasChannel() bool {
	return t.hasChannel
}

// HasItem verifica se um item existe no dataset
func (t *Table) HasItem(name string) bool {
	return t.items[name]
}

// Status descreve o dataset carregado e as funcionalidades disponíveis
func (t *Table) Status() *domain.DatasetStatus {
	status := &domain.DatasetStatus{
		Loaded:     true,
		Path:       t.path,
		Rows:       len(t.transactions),
		HasCost:    t.hasCost,
		HasChannel: t.hasChannel,
		Categories: t.categories,
		Items:      len(t.items),
	}

	if len(t.transactions) > 0 {
		status.StartDate = t.minDate.Format(time.DateOnly)
		status.EndDate = t.maxDate.Format(time.DateOnly)
	}

	return status
}

// Store guarda a tabela corrente e permite a troca atômica na recarga.
// A tabela em si nunca é mutada; recarregar substitui a referência inteira.
type Store struct {
	mu    sync.RWMutex
	path  string
	table *Table
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path retorna o caminho do arquivo fonte do dataset
func (s *Store) Path() string {
	return s.path
}

// Load lê o arquivo CSV do disco e substitui a tabela corrente
func (s *Store) Load() error {
	table, err := LoadCSV(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"path":        s.path,
		"rows":        len(table.transactions),
		"has_cost":    table.hasCost,
		"has_channel": table.hasChannel,
	}).Info("Dataset de transações carregado em memória")

	return nil
}

// Replace substitui a tabela corrente por transações recém-geradas
func (s *Store) Replace(transactions []*domain.Transaction) {
	s.mu.Lock()
	s.table = newTable(s.path, transactions, true, true)
	s.mu.Unlock()
}

// Table retorna a tabela corrente ou ErrNotLoaded
func (s *Store) Table() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.table == nil {
		return nil, ErrNotLoaded
	}

	return s.table, nil
}
