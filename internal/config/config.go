package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Google    Google   `mapstructure:",squash"`
	Meta      Meta     `mapstructure:",squash"`
	Sync      Sync     `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Google agrupa as credenciais da API de anúncios do Google e do endpoint OAuth
type Google struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	Version         string `mapstructure:"google_ads_version"`
	URL             string `mapstructure:"-"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	ClientID        string `mapstructure:"google_client_id"`
	ClientSecret    string `mapstructure:"google_client_secret"`
	TokenURL        string `mapstructure:"google_token_url"`
	MaxLookbackDays int    `mapstructure:"google_ads_max_lookback_days"`
}

type Meta struct {
	BaseURL               string   `mapstructure:"meta_base_url"`
	URL                   string   `mapstructure:"meta_url"`
	Version               string   `mapstructure:"meta_version"`
	AppID                 string   `mapstructure:"meta_app_id"`
	AppSecret             string   `mapstructure:"meta_app_secret"`
	TokenURL              string   `mapstructure:"meta_token_url"`
	PageLimit             int      `mapstructure:"meta_page_limit"`
	ConversionActionTypes []string `mapstructure:"meta_conversion_action_types"`
	MaxLookbackDays       int      `mapstructure:"meta_max_lookback_days"`
}

type Sync struct {
	CronSchedule             string        `mapstructure:"sync_cron"`
	Enabled                  bool          `mapstructure:"sync_enabled"`
	DefaultLookbackDays      int           `mapstructure:"sync_default_lookback_days"`
	MaxConcurrentAccounts    int           `mapstructure:"sync_max_concurrent_accounts"`
	MaxConcurrentConnections int           `mapstructure:"sync_max_concurrent_connections"`
	RequestTimeout           time.Duration `mapstructure:"sync_request_timeout"`
	FetchMaxRetries          int           `mapstructure:"sync_fetch_max_retries"`
	RetryBaseDelay           time.Duration `mapstructure:"sync_retry_base_delay"`
	TokenExpirySkew          time.Duration `mapstructure:"sync_token_expiry_skew"`
	Timezone                 string        `mapstructure:"sync_timezone"`
}

// Location retorna o fuso usado para calcular o "hoje" da janela de sincronização
func (s Sync) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido: %s, usando UTC", s.Timezone)
		return time.UTC
	}

	return loc
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "2m")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_sync?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_ADS_MAX_LOOKBACK_DAYS", 90)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_PAGE_LIMIT", 500)
	viper.SetDefault("META_CONVERSION_ACTION_TYPES", "offsite_conversion.fb_pixel_purchase,lead")
	viper.SetDefault("META_MAX_LOOKBACK_DAYS", 1095) // 37 meses de histórico no Insights

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SYNC_CRON", "0 3 * * *")             // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_ENABLED", false)                // Habilitar sincronização agendada
	viper.SetDefault("SYNC_DEFAULT_LOOKBACK_DAYS", 7)      // 7 dias para buscar dados
	viper.SetDefault("SYNC_MAX_CONCURRENT_ACCOUNTS", 1)    // 1 = contas processadas em sequência
	viper.SetDefault("SYNC_MAX_CONCURRENT_CONNECTIONS", 2) // Conexões sincronizadas em paralelo pelo agendador
	viper.SetDefault("SYNC_REQUEST_TIMEOUT", "30s")        // Timeout por chamada externa
	viper.SetDefault("SYNC_FETCH_MAX_RETRIES", 2)          // Retentativas em erros transitórios
	viper.SetDefault("SYNC_RETRY_BASE_DELAY", "500ms")     // Espera base entre retentativas
	viper.SetDefault("SYNC_TOKEN_EXPIRY_SKEW", "0s")       // Antecedência para renovar o token
	viper.SetDefault("SYNC_TIMEZONE", "UTC")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	config.Google.URL = fmt.Sprintf("%s/%s", config.Google.BaseURL, config.Google.Version)
	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)
	if config.Meta.TokenURL == "" {
		config.Meta.TokenURL = fmt.Sprintf("%s/oauth/access_token", config.Meta.URL)
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

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
