package analyzing

import (
	"github.com/headply/restaurant-analysis/internal/domain"
)

// Analyzer expõe as análises calculadas sobre o dataset em memória
type Analyzer interface {
	Overview(filters *domain.AnalyticsFilters, targetOverride *float64) (*domain.OverviewReport, error)
	MenuEngineering(filters *domain.AnalyticsFilters, policy domain.MedianPolicy) (*domain.MenuEngineeringReport, error)
	Waste(dimension domain.WasteDimension, filters *domain.AnalyticsFilters) (*domain.WasteReport, error)
	TimePatterns(granularity domain.TimeGranularity, filters *domain.AnalyticsFilters) (*domain.TimePatternReport, error)
}
