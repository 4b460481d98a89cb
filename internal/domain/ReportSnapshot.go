package domain

import (
	"time"
)

// DailyReportSnapshot representa o retrato diário de KPIs persistido pela
// sincronização agendada. Serve apenas como histórico de relatórios; as
// análises interativas são sempre recalculadas a partir do dataset em memória.
type DailyReportSnapshot struct {
	ID        int64           `json:"id"`
	Date      time.Time       `json:"date"`
	Overview  *OverviewReport `json:"overview"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
