package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`

	// Источник баров
	Feed struct {
		URL       string   `yaml:"url"`
		Symbols   []string `yaml:"symbols"`
		Timeframe string   `yaml:"timeframe"`
	} `yaml:"feed"`

	// Параметры решателя. Дефолты — как в боевой версии,
	// переопределяются yaml'ом или ENV.
	Engine struct {
		RiskFreeRate          float64 `yaml:"risk_free_rate"`
		MaxPositionSize       float64 `yaml:"max_position_size"`
		StopLossPct           float64 `yaml:"stop_loss_pct"`
		TakeProfitPct         float64 `yaml:"take_profit_pct"`
		LookbackPeriod        int     `yaml:"lookback_period"`
		MonteCarloSimulations int     `yaml:"monte_carlo_simulations"`
	} `yaml:"engine"`

	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := Config{}
	config.Service.Host = getenvDefault("SERVICE_HOST", "0.0.0.0")
	config.Service.AdminPort = intFromEnv("ADMIN_PORT", 8081)

	config.Feed.Timeframe = getenvDefault("TIMEFRAME", "1m")

	config.Engine.RiskFreeRate = floatFromEnv("RISK_FREE_RATE", 0.02)
	config.Engine.MaxPositionSize = floatFromEnv("MAX_POSITION_SIZE", 0.1)
	config.Engine.StopLossPct = floatFromEnv("STOP_LOSS_PCT", 0.05)
	config.Engine.TakeProfitPct = floatFromEnv("TAKE_PROFIT_PCT", 0.15)
	config.Engine.LookbackPeriod = intFromEnv("LOOKBACK_PERIOD", 252)
	config.Engine.MonteCarloSimulations = intFromEnv("MONTE_CARLO_SIMULATIONS", 1000)

	config.Tracing.Host = getenvDefault("JAEGER_HOST", "localhost")
	config.Tracing.Port = intFromEnv("JAEGER_PORT", 6831)

	// yaml поверх дефолтов; файл опционален — без него живём на ENV
	if configFileName := os.Getenv(configFilePathENV); configFileName != "" {
		file, err := os.Open("configs/" + configFileName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open config file")
		}
		defer func() {
			_ = file.Close()
		}()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, errors.Wrap(err, "failed to decode config file")
		}
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}
	if url := os.Getenv("FEED_URL"); url != "" {
		config.Feed.URL = url
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
