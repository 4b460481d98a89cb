package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/headply/restaurant-analysis/infrastructure/database/postgres"
	"github.com/headply/restaurant-analysis/internal/domain"
)

const reportSnapshotsTable = "daily_report_snapshots rs"

type ReportSnapshotRepository interface {
	GetByDate(date time.Time) (*domain.DailyReportSnapshot, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyReportSnapshot, error)
	SaveOrUpdate(snapshot *domain.DailyReportSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) GetByDate(date time.Time) (*domain.DailyReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.date, rs.overview, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *reportSnapshotRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.date, rs.overview, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		Where(squirrel.GtOrEq{"rs.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"rs.date": endDate.Format(time.DateOnly)}).
		OrderBy("rs.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.DailyReportSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *reportSnapshotRepository) SaveOrUpdate(snapshot *domain.DailyReportSnapshot) error {
	var overviewJSON []byte
	var err error

	if snapshot.Overview != nil {
		overviewJSON, err = json.Marshal(snapshot.Overview)
		if err != nil {
			return fmt.Errorf("erro ao serializar Overview para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("daily_report_snapshots").
		Columns("date", "overview").
		Values(
			snapshot.Date.Format(time.DateOnly),
			overviewJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				overview = EXCLUDED.overview,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("daily_report_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// rowScanner cobre sql.Row e sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *reportSnapshotRepository) scanSnapshot(row rowScanner) (*domain.DailyReportSnapshot, error) {
	snapshot := &domain.DailyReportSnapshot{}
	var overviewJSON []byte

	// O driver devolve colunas date como time.Time, então o scan é direto
	err := row.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&overviewJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if overviewJSON != nil {
		overview := &domain.OverviewReport{}
		if err := json.Unmarshal(overviewJSON, overview); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de overview: %w", err)
		}
		snapshot.Overview = overview
	}

	return snapshot, nil
}
