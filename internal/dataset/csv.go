package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headply/restaurant-analysis/internal/domain"
)

// Colunas do arquivo de transações. unit_cost e channel são opcionais: a
// ausência delas degrada as funcionalidades dependentes em vez de falhar.
var (
	requiredColumns = []string{
		"order_id", "order_datetime", "item_name", "category",
		"unit_price", "quantity", "waste_quantity", "waste_type",
	}
	optionalColumns = []string{"unit_cost", "channel"}
)

const datetimeLayout = "2006-01-02 15:04:05"

// LoadCSV lê o arquivo de transações do PDV e monta a tabela em memória.
// Arquivo ausente ou malformado é erro fatal de carga.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir o arquivo de transações %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o cabeçalho do arquivo de transações")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, errors.Errorf("coluna obrigatória ausente no arquivo de transações: %s", name)
		}
	}

	_, hasCost := columns["unit_cost"]
	_, hasChannel := columns["channel"]

	if !hasCost {
		logrus.Warn("Coluna unit_cost ausente: métricas de custo, margem e desperdício ficarão desabilitadas")
	}
	if !hasChannel {
		logrus.Warn("Coluna channel ausente: filtro e análise por canal ficarão desabilitados")
	}

	transactions := make([]*domain.Transaction, 0, 1024)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler a linha %d do arquivo de transações", line+1)
		}
		line++

		tx, err := parseRecord(record, columns, hasCost, hasChannel)
		if err != nil {
			return nil, errors.Wrapf(err, "erro na linha %d do arquivo de transações", line)
		}

		transactions = append(transactions, tx)
	}

	return newTable(path, transactions, hasCost, hasChannel), nil
}

func parseRecord(record []string, columns map[string]int, hasCost, hasChannel bool) (*domain.Transaction, error) {
	field := func(name string) string {
		return record[columns[name]]
	}

	timestamp, err := time.Parse(datetimeLayout, field("order_datetime"))
	if err != nil {
		return nil, errors.Wrap(err, "order_datetime inválido")
	}

	unitPrice, err := strconv.ParseFloat(field("unit_price"), 64)
	if err != nil {
		return nil, errors.Wrap(err, "unit_price inválido")
	}

	quantity, err := strconv.Atoi(field("quantity"))
	if err != nil {
		return nil, errors.Wrap(err, "quantity inválido")
	}

	wasteQuantity, err := strconv.Atoi(field("waste_quantity"))
	if err != nil {
		return nil, errors.Wrap(err, "waste_quantity inválido")
	}

	wasteType, err := domain.ParseWasteType(field("waste_type"))
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		OrderID:       field("order_id"),
		Timestamp:     timestamp,
		ItemName:      field("item_name"),
		Category:      field("category"),
		UnitPrice:     unitPrice,
		Quantity:      quantity,
		WasteQuantity: wasteQuantity,
		WasteType:     wasteType,
	}

	if hasCost {
		unitCost, err := strconv.ParseFloat(field("unit_cost"), 64)
		if err != nil {
			return nil, errors.Wrap(err, "unit_cost inválido")
		}
		tx.UnitCost = unitCost
	}

	if hasChannel {
		channel, err := domain.ParseChannel(field("channel"))
		if err != nil {
			return nil, err
		}
		tx.Channel = channel
	}

	return tx, nil
}

// WriteCSV grava as transações no formato lido por LoadCSV, com todas as
// colunas. Usado pelo gerador de dados sintéticos.
func WriteCSV(path string, transactions []*domain.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "erro ao criar o diretório do dataset")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao criar o arquivo de transações %s", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"order_id", "order_datetime", "item_name", "category", "channel",
		"unit_price", "unit_cost", "quantity", "waste_quantity", "waste_type",
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "erro ao gravar o cabeçalho do arquivo de transações")
	}

	for _, tx := range transactions {
		record := []string{
			tx.OrderID,
			tx.Timestamp.Format(datetimeLayout),
			tx.ItemName,
			tx.Category,
			string(tx.Channel),
			strconv.FormatFloat(tx.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(tx.UnitCost, 'f', 2, 64),
			strconv.Itoa(tx.Quantity),
			strconv.Itoa(tx.WasteQuantity),
			string(tx.WasteType),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "erro ao gravar transação no arquivo")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "erro ao finalizar a gravação do arquivo de transações")
	}

	return nil
}
