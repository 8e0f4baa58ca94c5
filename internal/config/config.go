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
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	OpenAI          OpenAI          `mapstructure:",squash"`
	HubSpot         HubSpot         `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Benchmarks      Benchmarks      `mapstructure:",squash"`
	Trend           Trend           `mapstructure:",squash"`
	PerformanceSync PerformanceSync `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
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

type OpenAI struct {
	BaseURL        string        `mapstructure:"openai_base_url"`
	APIKey         string        `mapstructure:"openai_api_key"`
	Model          string        `mapstructure:"openai_model"`
	RequestTimeout time.Duration `mapstructure:"openai_request_timeout"`
	MockMode       bool          `mapstructure:"openai_mock_mode"`
}

type HubSpot struct {
	BaseURL  string `mapstructure:"hubspot_base_url"`
	APIKey   string `mapstructure:"hubspot_api_key"`
	MockMode bool   `mapstructure:"hubspot_mock_mode"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Benchmarks guarda as referências de mercado usadas na comparação de campanhas
type Benchmarks struct {
	OpenRate        float64 `mapstructure:"benchmark_open_rate"`
	ClickRate       float64 `mapstructure:"benchmark_click_rate"`
	UnsubscribeRate float64 `mapstructure:"benchmark_unsubscribe_rate"`
	Tolerance       float64 `mapstructure:"benchmark_tolerance"`
}

// Trend parametriza a análise de tendência sobre o histórico de snapshots
type Trend struct {
	WindowSize     int     `mapstructure:"trend_window_size"`
	NoiseThreshold float64 `mapstructure:"trend_noise_threshold"`
}

type PerformanceSync struct {
	CronSchedule        string `mapstructure:"performance_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"performance_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"performance_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"performance_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/contentpipeline")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_API_KEY", "") // ONLY LOCAL
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("OPENAI_MOCK_MODE", true)

	viper.SetDefault("HUBSPOT_BASE_URL", "https://api.hubapi.com")
	viper.SetDefault("HUBSPOT_API_KEY", "")
	viper.SetDefault("HUBSPOT_MOCK_MODE", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Referências de mercado para e-mail marketing
	viper.SetDefault("BENCHMARK_OPEN_RATE", 0.21)
	viper.SetDefault("BENCHMARK_CLICK_RATE", 0.10)
	viper.SetDefault("BENCHMARK_UNSUBSCRIBE_RATE", 0.005)
	viper.SetDefault("BENCHMARK_TOLERANCE", 0.10) // ±10% em torno do benchmark

	viper.SetDefault("TREND_WINDOW_SIZE", 10)       // Janela de snapshots por tendência
	viper.SetDefault("TREND_NOISE_THRESHOLD", 0.01) // Variações menores são ruído

	// Defaults para sincronização de métricas de campanha
	viper.SetDefault("PERFORMANCE_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("PERFORMANCE_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("PERFORMANCE_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("PERFORMANCE_SYNC_ENABLED", false)           // Habilitar coleta automática

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

	if config.OpenAI.APIKey == "" && !config.OpenAI.MockMode {
		logrus.Warn("OPENAI_API_KEY ausente; ativando modo mock do gerador de texto")
		config.OpenAI.MockMode = true
	}

	if config.HubSpot.APIKey == "" && !config.HubSpot.MockMode {
		logrus.Warn("HUBSPOT_API_KEY ausente; ativando modo mock do CRM")
		config.HubSpot.MockMode = true
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
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
