package domain

import "fmt"

// TimeGranularity define a dimensão temporal do agrupamento
type TimeGranularity string

const (
	GranularityHour    TimeGranularity = "hour"
	GranularityWeekday TimeGranularity = "weekday"
	GranularityMonth   TimeGranularity = "month"
)

// ParseTimeGranularity valida uma granularidade temporal
func ParseTimeGranularity(value string) (TimeGranularity, error) {
	switch TimeGranularity(value) {
	case GranularityHour, GranularityWeekday, GranularityMonth:
		return TimeGranularity(value), nil
	}
	return "", fmt.Errorf("granularidade inválida: %q (valores aceitos: hour, weekday, month)", value)
}

// Weekdays na ordem cíclica usada nos agrupamentos (segunda a domingo)
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// TimeBucket representa receita e volume agregados em um intervalo temporal.
// A ordem dos buckets é cíclica (horas 0-23, segunda a domingo) ou
// cronológica (meses), nunca a ordem de inserção.
type TimeBucket struct {
	Bucket   string  `json:"bucket"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
	Orders   int     `json:"orders"`
}

// TimePatternReport é a resposta da análise de padrões temporais
type TimePatternReport struct {
	Granularity TimeGranularity   `json:"granularity"`
	Buckets     []*TimeBucket     `json:"buckets"`
	Filters     *AnalyticsFilters `json:"filters,omitempty"`
}
