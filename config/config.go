package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var drivers = []string{DriverFile, DriverSQLite, DriverPostgres, DriverRedis}

type storage struct {
	Driver   string        `mapstructure:"driver"`
	Key      string        `mapstructure:"key"`
	Dir      string        `mapstructure:"dir"`
	SQLite   string        `mapstructure:"sqlite"`
	SQLDB    string        `mapstructure:"sql_db"`
	RedisURL string        `mapstructure:"redis_url"`
	RedisTTL time.Duration `mapstructure:"redis_ttl"`
}

type pricing struct {
	ShippingFee int64           `mapstructure:"shipping_fee"`
	TaxRate     decimal.Decimal `mapstructure:"tax_rate"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	OrdersTopic        string   `mapstructure:"orders_topic"`
	Partitions         int32    `mapstructure:"partitions"`
	ReplicationFactor  int16    `mapstructure:"replication_factor"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	Storage        storage       `mapstructure:"storage"`
	Pricing        pricing       `mapstructure:"pricing"`
	Broker         broker        `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("http_timeout", "5s")

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.key", "pp_cart")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.sqlite", "storefront.db")
	v.SetDefault("storage.sql_db", "")
	v.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis_ttl", "0s")

	v.SetDefault("pricing.shipping_fee", 79)
	v.SetDefault("pricing.tax_rate", "0.05")

	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.orders_topic", "storefront-orders")
	v.SetDefault("broker.partitions", 3)
	v.SetDefault("broker.replication_factor", 1)
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

// Load reads the config named by the --config flag or the
// STOREFRONT_CONFIG_FILE env and exits the process on failure.
func Load() Config {
	cfg, err := LoadArgs(os.Args[1:])
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadArgs merges, by increasing priority, the defaults, the config
// file and the STOREFRONT_ prefixed env.
func LoadArgs(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := getConfigFilepath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			decimalHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decimalHookFunc accepts YAML numbers for decimal fields.
func decimalHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(decimal.Decimal{})
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}
		switch v := data.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		}
		return data, nil
	}
}

func (c Config) validate() error {
	var errs []error
	if !slices.Contains(drivers, c.Storage.Driver) {
		errs = append(errs, fmt.Errorf(
			"storage.driver %q is not one of %v", c.Storage.Driver, drivers,
		))
	}
	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key is empty"))
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.SQLDB == "" {
		errs = append(errs, errors.New("storage.sql_db is required by postgres driver"))
	}
	if c.Pricing.ShippingFee < 0 {
		errs = append(errs, errors.New("pricing.shipping_fee is negative"))
	}
	if c.Pricing.TaxRate.IsNegative() {
		errs = append(errs, errors.New("pricing.tax_rate is negative"))
	}
	if c.Broker.Enabled {
		if len(c.Broker.SeedBrokers) == 0 {
			errs = append(errs, errors.New("broker.seed_brokers is empty"))
		}
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("broker.schema_registry_urls is empty"))
		}
	}
	return errors.Join(errs...)
}

func getConfigFilepath(args []string) string {
	cmdLine := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	cmdLine.SetOutput(nopWriter{})
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(args)
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HTTPTimeout=%q

	Storage:
	Driver=%q
	Key=%q
	Dir=%q
	SQLite=%q
	RedisTTL=%q

	Pricing:
	ShippingFee=%d
	TaxRate=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	OrdersTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HTTPTimeout,
		c.Storage.Driver,
		c.Storage.Key,
		c.Storage.Dir,
		c.Storage.SQLite,
		c.Storage.RedisTTL,
		c.Pricing.ShippingFee,
		c.Pricing.TaxRate,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.OrdersTopic,
	)
}
