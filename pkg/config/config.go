package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Gateway      GatewayConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	BigQuery     BigQueryConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OMC_APP_ENV" required:"true"`
	Port         string `envconfig:"OMC_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"OMC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OMC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OMC_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"OMC_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OMC_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OMC_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OMC_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OMC_REDIS_URL"`
	Address      string        `envconfig:"OMC_REDIS_ADDR"`
	Password     string        `envconfig:"OMC_REDIS_PASSWORD"`
	DB           int           `envconfig:"OMC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OMC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OMC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OMC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OMC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OMC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the tax defaults applied when a sale request does not
// override them. The rate captured at creation time is stored on the
// transaction, so later changes here never touch historical rows.
type PricingConfig struct {
	DefaultTaxRate string `envconfig:"OMC_PRICING_DEFAULT_TAX_RATE" default:"0.175"`
	Currency       string `envconfig:"OMC_PRICING_CURRENCY" default:"GHS"`
}

func (p PricingConfig) validate() error {
	rate, err := decimal.NewFromString(p.DefaultTaxRate)
	if err != nil {
		return fmt.Errorf("invalid default tax rate %q: %w", p.DefaultTaxRate, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("default tax rate must not be negative")
	}
	return nil
}

// TaxRate returns the configured default tax rate as a decimal.
func (p PricingConfig) TaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(p.DefaultTaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// GatewayConfig selects and tunes the payment gateway implementation.
type GatewayConfig struct {
	// Driver picks the gateway backing. "static" settles deterministically and
	// is the only driver shipped until a processor integration lands.
	Driver         string        `envconfig:"OMC_GATEWAY_DRIVER" default:"static"`
	ProcessTimeout time.Duration `envconfig:"OMC_GATEWAY_PROCESS_TIMEOUT" default:"15s"`
	RefundTimeout  time.Duration `envconfig:"OMC_GATEWAY_REFUND_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OMC_FEATURE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"OMC_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"OMC_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"OMC_GCP_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	TransactionsTopic     string        `envconfig:"OMC_PUBSUB_TRANSACTIONS_TOPIC" default:"omc-transactions"`
	InventoryTopic        string        `envconfig:"OMC_PUBSUB_INVENTORY_TOPIC" default:"omc-inventory"`
	AnalyticsSubscription string        `envconfig:"OMC_PUBSUB_ANALYTICS_SUBSCRIPTION" default:"omc-transactions-analytics"`
	EventIdempotencyTTL   time.Duration `envconfig:"OMC_PUBSUB_EVENT_IDEMPOTENCY_TTL" default:"24h"`
}

type BigQueryConfig struct {
	Dataset           string `envconfig:"OMC_BIGQUERY_DATASET"`
	DailySummaryTable string `envconfig:"OMC_BIGQUERY_DAILY_SUMMARY_TABLE" default:"daily_sales_summary"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OMC_OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"OMC_OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int           `envconfig:"OMC_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
