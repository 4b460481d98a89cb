package domain

// MenuItem descreve um item do cardápio usado pelo gerador de dados
type MenuItem struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"base_price"`
	BaseCost  float64 `json:"base_cost"`
}

// DatasetStatus descreve o dataset carregado em memória e as funcionalidades
// disponíveis. HasCost/HasChannel indicam as colunas opcionais presentes;
// quando ausentes, as análises dependentes ficam desabilitadas.
type DatasetStatus struct {
	Loaded     bool     `json:"loaded"`
	Path       string   `json:"path"`
	Rows       int      `json:"rows"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	HasCost    bool     `json:"has_cost"`
	HasChannel bool     `json:"has_channel"`
	Categories []string `json:"categories"`
	Items      int      `json:"items"`
}

// DatasetGenerateRequest são os parâmetros opcionais da regeneração do
// dataset sintético. Campos nulos usam os valores da configuração ativa.
type DatasetGenerateRequest struct {
	Seed             *int64   `json:"seed,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	BaseOrdersPerDay *int     `json:"base_orders_per_day,omitempty"`
	RainyDayChance   *float64 `json:"rainy_day_chance,omitempty"`
}
