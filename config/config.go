package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/golang/glog"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// Configuration specifies the static application config.
type Configuration struct {
	ExternalURL string `mapstructure:"external_url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	AdminPort   int    `mapstructure:"admin_port"`
	// EnableGzip compresses sandbox endpoint responses when the client accepts it.
	EnableGzip bool `mapstructure:"enable_gzip"`

	Adapters map[string]Adapter `mapstructure:"adapters"`

	// Publisher holds the default publisher settings applied when a bidder request carries none.
	Publisher Publisher `mapstructure:"publisher"`

	Metrics Metrics `mapstructure:"metrics"`

	// MaxRequestSize caps the body of sandbox requests, in bytes.
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// StatusResponse is the body of GET /status. An empty value answers 204 No Content.
	StatusResponse string `mapstructure:"status_response"`

	// BidderParamsSchemaDir is the directory holding the bidder params JSON schemas.
	BidderParamsSchemaDir string `mapstructure:"bidder_params_schema_dir"`

	// BidderInfoDir is the directory holding the static bidder-info yaml files.
	BidderInfoDir string `mapstructure:"bidder_info_dir"`
}

// Publisher is the publisher-side configuration snapshot consulted while building requests:
// user sync filtering and the COPPA flag.
type Publisher struct {
	Coppa    bool     `mapstructure:"coppa" json:"coppa"`
	UserSync UserSync `mapstructure:"user_sync" json:"userSync"`
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

type PrometheusMetrics struct {
	// Enabled exposes the Prometheus registry on the admin port under /metrics.
	Enabled          bool   `mapstructure:"enabled"`
	Namespace        string `mapstructure:"namespace"`
	Subsystem        string `mapstructure:"subsystem"`
	TimeoutMillisRaw int    `mapstructure:"timeout_ms"`
}

func (cfg *PrometheusMetrics) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutMillisRaw) * time.Millisecond
}

func (cfg *Configuration) validate() []error {
	var errs []error

	if cfg.Port == cfg.AdminPort && cfg.Port != 0 {
		errs = append(errs, fmt.Errorf("port and admin_port must differ: both are %d", cfg.Port))
	}
	if cfg.MaxRequestSize < 0 {
		errs = append(errs, fmt.Errorf("max_request_size must not be negative: %d", cfg.MaxRequestSize))
	}
	if cfg.Metrics.Prometheus.TimeoutMillisRaw < 0 {
		errs = append(errs, errors.New("metrics.prometheus.timeout_ms must not be negative"))
	}

	errs = validateAdapters(cfg.Adapters, errs)
	errs = cfg.Publisher.UserSync.validate(errs)
	return errs
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}

	glog.Info("Logging the resolved configuration:")
	logGeneral(&c)

	if errs := c.validate(); len(errs) > 0 {
		return &c, errortypes.NewAggregateErrors("validation errors", errs)
	}

	return &c, nil
}

func logGeneral(c *Configuration) {
	glog.Infof("config.host = %s", c.Host)
	glog.Infof("config.port = %d", c.Port)
	glog.Infof("config.admin_port = %d", c.AdminPort)
	glog.Infof("config.publisher.coppa = %t", c.Publisher.Coppa)
	glog.Infof("config.publisher.user_sync.sync_enabled = %t", c.Publisher.UserSync.SyncEnabled)
	for name, adapter := range c.Adapters {
		glog.Infof("config.adapters.%s.endpoint = %s", name, adapter.Endpoint)
		glog.Infof("config.adapters.%s.currency = %s", name, adapter.Currency)
	}
}

// SetupViper sets the defaults, the environment binding and the config file lookup.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("max_request_size", 1024*256)
	v.SetDefault("status_response", "")
	v.SetDefault("bidder_params_schema_dir", "static/bidder-params")
	v.SetDefault("bidder_info_dir", "static/bidder-info")

	v.SetDefault("metrics.prometheus.enabled", true)
	v.SetDefault("metrics.prometheus.namespace", "avx")
	v.SetDefault("metrics.prometheus.subsystem", "adapter")
	v.SetDefault("metrics.prometheus.timeout_ms", 10000)

	v.SetDefault("publisher.coppa", false)
	v.SetDefault("publisher.user_sync.sync_enabled", true)
	v.SetDefault("publisher.user_sync.filter_settings.image.bidders", "*")
	v.SetDefault("publisher.user_sync.filter_settings.image.filter", string(FilterModeInclude))

	v.SetDefault("adapters.adverxo.endpoint", "https://{{.Host}}/auction?id={{.AdUnit}}&auth={{.AccountID}}")
	v.SetDefault("adapters.adverxo.disabled", false)
	v.SetDefault("adapters.adverxo.currency", DefaultCurrency)
	v.SetDefault("adapters.adverxo.ttl", DefaultTTL)
	v.SetDefault("adapters.adverxo.net_revenue", true)
	v.SetDefault("adapters.adverxo.features.native", true)
	v.SetDefault("adapters.adverxo.features.video", true)

	v.SetEnvPrefix("AVX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				glog.Warningf("Failed to read config file %s: %v", filename, err)
			}
		}
	}
}

// validateCurrency checks that code is an ISO 4217 currency code.
func validateCurrency(code string) error {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return err
	}
	if unit.String() != strings.ToUpper(code) {
		return fmt.Errorf("currency %s is not in canonical form %s", code, unit.String())
	}
	return nil
}
