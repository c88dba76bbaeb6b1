package config

import (
	"strings"
	"sync"

	"github.com/clippay/settlement-engine/common"
	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/middleware/requestcontext"
	"github.com/clippay/settlement-engine/pkg/middleware/requestlogger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	parseOnce sync.Once
	cfg       = Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
	}
)

type Config struct {
	Logger        logger.Config    `mapstructure:"logger"`
	Network       common.Network   `mapstructure:"network"`
	EnableModules []string         `mapstructure:"enable_modules"`
	HTTPServer    HTTPServerConfig `mapstructure:"http_server"`
	ChainRPC      ChainRPCConfig   `mapstructure:"chain_rpc"`
	Modules       ModulesConfig    `mapstructure:"modules"`
}

type HTTPServerConfig struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

type ChainRPCConfig struct {
	// URL of the chain JSON-RPC endpoint. Defaults to the network's public endpoint.
	URL string `mapstructure:"url"`
}

type ModulesConfig struct {
	Settlement config.Config `mapstructure:"settlement"`
}

// BindPFlag binds a cobra/pflag flag to a configuration key.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Failed to bind flag to configuration", "key", key)
	}
}

// Parse reads the configuration from the given file (or ./config.yaml when
// empty), overlays environment variables and bound flags, and caches the result.
func Parse(configFile string) Config {
	parseOnce.Do(func() {
		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.Warn("config file not found, use default value", "error", err)
			} else {
				logger.Panic("invalid config file", "error", err)
			}
		}

		if err := viper.Unmarshal(&cfg); err != nil {
			logger.Panic("failed to unmarshal config", "error", err)
		}
	})
	return cfg
}

// Load returns the cached configuration. Parse must be called first; callers
// before cobra initialization get defaults.
func Load() Config {
	return cfg
}
