package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/headply/restaurant-analysis/infrastructure/database/postgres"
	"github.com/headply/restaurant-analysis/infrastructure/repository"
	"github.com/headply/restaurant-analysis/internal/api"
	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/dataset"
	"github.com/headply/restaurant-analysis/internal/scheduler"
	"github.com/headply/restaurant-analysis/internal/usecases/analyzing"
	"github.com/headply/restaurant-analysis/internal/usecases/authenticating"
	"github.com/headply/restaurant-analysis/internal/usecases/provisioning"
	"github.com/headply/restaurant-analysis/internal/usecases/simulating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Carrega o dataset de transações; na ausência do arquivo, gera um novo
	// quando o autogenerate está habilitado
	store := dataset.NewStore(cfg.Dataset.Path)
	provisioner := provisioning.NewService(cfg, store)

	if err := store.Load(); err != nil {
		if !cfg.Dataset.AutoGenerate {
			logrus.WithError(err).Fatal("Erro ao carregar o dataset e o autogenerate está desabilitado")
		}

		logrus.WithError(err).Warn("Dataset ausente ou inválido, gerando um novo")

		if _, err := provisioner.Generate(nil); err != nil {
			logrus.WithError(err).Fatal("Erro ao gerar o dataset sintético")
		}
	}

	analyzer := analyzing.NewService(cfg, store)
	simulator := simulating.NewService(cfg, analyzer)

	// Inicializa o agendador de sincronização dos retratos diários
	snapshotSyncService := scheduler.NewSnapshotSyncService(analyzer, snapshotRepo, cfg)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de relatórios diários")
	} else {
		logrus.Info("Agendador de sincronização de relatórios diários iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		analyzer,
		simulator,
		provisioner,
		authenticator,
		snapshotRepo,
		snapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
