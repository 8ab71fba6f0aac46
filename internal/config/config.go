package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/leak-calc/internal/assumptions"
)

// EnvPrefix is the prefix for environment overrides, e.g. LEAKCALC_SERVER_PORT.
const EnvPrefix = "LEAKCALC"

// MaxBatchConcurrency bounds batch.max_concurrent.
const MaxBatchConcurrency = 64

// Config holds the full application configuration.
type Config struct {
	Log         LogConfig       `yaml:"log" mapstructure:"log"`
	Server      ServerConfig    `yaml:"server" mapstructure:"server"`
	Batch       BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Assumptions assumptions.Set `yaml:"assumptions" mapstructure:"assumptions"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment. Bucket tables in
// the assumptions section are merged key by key over the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("batch.max_concurrent", 8)

	d := assumptions.Default()
	v.SetDefault("assumptions.default_close_rate", d.DefaultCloseRate)
	v.SetDefault("assumptions.default_consultation_minutes", d.DefaultConsultationMinutes)
	v.SetDefault("assumptions.recommended_follow_ups", d.RecommendedFollowUps)
	v.SetDefault("assumptions.follow_up_recovery_rate", d.FollowUpRecoveryRate)
	v.SetDefault("assumptions.monthly_hours_per_staff", d.MonthlyHoursPerStaff)
	v.SetDefault("assumptions.hold_abandon_per_minute", d.HoldAbandonPerMinute)
	v.SetDefault("assumptions.max_hold_abandon", d.MaxHoldAbandon)
	v.SetDefault("assumptions.confidence_band", d.ConfidenceBand)
	v.SetDefault("assumptions.critical_share", d.CriticalShare)
	v.SetDefault("assumptions.high_share", d.HighShare)
	v.SetDefault("assumptions.medium_share", d.MediumShare)
	v.SetDefault("assumptions.expected_response_rate", d.ExpectedResponseRate)
	v.SetDefault("assumptions.best_case_response_rate", d.BestCaseResponseRate)
	v.SetDefault("assumptions.reactivation_close_rate", d.ReactivationCloseRate)
	v.SetDefault("assumptions.regular_recontact_share", d.RegularRecontactShare)
	v.SetDefault("assumptions.win_back_rate", d.WinBackRate)
	v.SetDefault("assumptions.return_purchase_bonus", d.ReturnPurchaseBonus)
	v.SetDefault("assumptions.campaign_monthly_cost", d.CampaignMonthlyCost)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	// Tables are pre-seeded so a partial override keeps the remaining buckets.
	cfg := Config{Assumptions: d}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server.rate_limit must be >= 0")
	}
	if c.Server.RateBurst < 0 {
		errs = append(errs, "server.rate_burst must be >= 0")
	}
	if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > MaxBatchConcurrency {
		errs = append(errs, fmt.Sprintf("batch.max_concurrent must be between 1 and %d", MaxBatchConcurrency))
	}
	if err := assumptions.Validate(c.Assumptions); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
