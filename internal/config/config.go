package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Dataset      Dataset      `mapstructure:",squash"`
	Generator    Generator    `mapstructure:",squash"`
	Analytics    Analytics    `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Dataset struct {
	// Path é o caminho do arquivo CSV de transações do PDV
	Path string `mapstructure:"dataset_path"`
	// AutoGenerate gera o dataset na inicialização quando o arquivo não existe
	AutoGenerate bool `mapstructure:"dataset_auto_generate"`
}

type Generator struct {
	Seed             int64   `mapstructure:"generator_seed"`
	StartDate        string  `mapstructure:"generator_start_date"`
	EndDate          string  `mapstructure:"generator_end_date"`
	BaseOrdersPerDay int     `mapstructure:"generator_base_orders_per_day"`
	RainyDayChance   float64 `mapstructure:"generator_rainy_day_chance"`
}

type Analytics struct {
	// TargetFoodCostPercent é a meta de custo de alimentos em % da receita
	TargetFoodCostPercent float64 `mapstructure:"target_food_cost_percent"`
	// MedianPolicy define se as medianas dos quadrantes são recalculadas por
	// filtro ("filtered") ou fixadas no dataset completo ("global")
	MedianPolicy string `mapstructure:"median_policy"`
	// DefaultElasticity é a elasticidade-preço usada quando a simulação não
	// informa uma constante própria
	DefaultElasticity float64 `mapstructure:"default_elasticity"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type SnapshotSync struct {
	CronSchedule string `mapstructure:"snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"snapshot_sync_enabled"`
	LookbackDays int    `mapstructure:"snapshot_sync_lookback_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/restaurant?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DATASET_PATH", "data/restaurant_pos_data.csv")
	viper.SetDefault("DATASET_AUTO_GENERATE", true)

	viper.SetDefault("GENERATOR_SEED", 42)
	viper.SetDefault("GENERATOR_START_DATE", "2023-01-01")
	viper.SetDefault("GENERATOR_END_DATE", "2024-06-30")
	viper.SetDefault("GENERATOR_BASE_ORDERS_PER_DAY", 280)
	viper.SetDefault("GENERATOR_RAINY_DAY_CHANCE", 0.20)

	viper.SetDefault("TARGET_FOOD_COST_PERCENT", 32.0)
	viper.SetDefault("MEDIAN_POLICY", "filtered")
	viper.SetDefault("DEFAULT_ELASTICITY", -1.5)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para a sincronização de snapshots diários
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)
	viper.SetDefault("SNAPSHOT_SYNC_LOOKBACK_DAYS", 7)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
