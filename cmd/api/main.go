package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/google"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-sync-api/infrastructure/integrator/oauth"
	"github.com/vfg2006/ads-sync-api/infrastructure/repository"
	"github.com/vfg2006/ads-sync-api/internal/api"
	"github.com/vfg2006/ads-sync-api/internal/config"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/scheduler"
	"github.com/vfg2006/ads-sync-api/internal/usecases/account"
	"github.com/vfg2006/ads-sync-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-api/internal/usecases/tokening"
	"github.com/vfg2006/ads-sync-api/pkg/log"
)

func main() {
	log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	connectionRepo := repository.NewConnectionRepository(pgConn)
	selectedAccountRepo := repository.NewSelectedAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	dailyMetricRepo := repository.NewDailyMetricRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)

	exchangers, clients := providers(cfg)

	tokenService := tokening.NewService(connectionRepo, exchangers, cfg.Sync.TokenExpirySkew)

	syncService := syncing.NewService(
		connectionRepo,
		selectedAccountRepo,
		campaignRepo,
		dailyMetricRepo,
		tokenService,
		syncing.NewRunRecorder(syncRunRepo),
		syncing.Options{
			MaxConcurrentAccounts: cfg.Sync.MaxConcurrentAccounts,
			FetchMaxRetries:       cfg.Sync.FetchMaxRetries,
			RetryBaseDelay:        cfg.Sync.RetryBaseDelay,
			MaxLookbackDays: map[domain.Provider]int{
				domain.ProviderGoogle: cfg.Google.MaxLookbackDays,
				domain.ProviderMeta:   cfg.Meta.MaxLookbackDays,
			},
			Location: cfg.Sync.Location(),
		},
		clients...,
	)

	providerSyncService := scheduler.NewProviderSyncService(connectionRepo, syncService, cfg)
	if err := providerSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	} else {
		logrus.Info("Agendador de sincronização iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		syncService,
		dailyMetricRepo,
		account.NewService(selectedAccountRepo, connectionRepo),
		authenticating.NewService(cfg),
		providerSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// providers registra somente os provedores com credenciais configuradas.
// Um provedor ausente faz a sincronização falhar com ErrProviderCredentialsMissing.
func providers(cfg *config.Config) (map[domain.Provider]oauth.Exchanger, []syncing.ProviderClient) {
	exchangers := map[domain.Provider]oauth.Exchanger{}
	clients := []syncing.ProviderClient{}

	if cfg.Google.DeveloperToken != "" && cfg.Google.ClientID != "" {
		exchangers[domain.ProviderGoogle] = oauth.NewRefreshTokenExchanger(oauth.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			TokenURL:     cfg.Google.TokenURL,
			Timeout:      cfg.Sync.RequestTimeout,
		})
		clients = append(clients, google.New(cfg, googleclient.NewClient(cfg)))
	} else {
		logrus.Warn("Credenciais do Google Ads não configuradas, provedor desabilitado")
	}

	if cfg.Meta.AppID != "" && cfg.Meta.AppSecret != "" {
		exchangers[domain.ProviderMeta] = metaclient.NewTokenExchanger(cfg)
		clients = append(clients, meta.New(cfg, metaclient.NewClient(cfg)))
	} else {
		logrus.Warn("Credenciais do Meta não configuradas, provedor desabilitado")
	}

	return exchangers, clients
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
