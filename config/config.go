// Package config defines the daemon configuration and how it is read from file, flags and environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	union "github.com/uniongov/union-core/types"
)

const (
	// EnvPrefix is the prefix of all environment variables overriding the config
	EnvPrefix = "UNION"

	// FileName is the name of the config file in the config directory of the home directory
	FileName = "config"
	fileType = "toml"
)

// Config is the configuration of the union daemon
type Config struct {
	UnionID       union.Principal `mapstructure:"union_id"`
	DBBackend     string          `mapstructure:"db_backend"`
	DBDir         string          `mapstructure:"db_dir"`
	SignerKeyFile string          `mapstructure:"signer_key_file"`
	GenesisFile   string          `mapstructure:"genesis_file"`
	TickInterval  time.Duration   `mapstructure:"tick_interval"`
	Log           LogConfig       `mapstructure:"log"`
	API           APIConfig       `mapstructure:"api"`
	Peers         []Peer          `mapstructure:"peer"`
}

// LogConfig configures the daemon log output
type LogConfig struct {
	Level  zerolog.Level `mapstructure:"level"`
	Format string        `mapstructure:"format"`
}

// APIConfig configures the HTTP server of the daemon
type APIConfig struct {
	ListenAddress   string        `mapstructure:"listen_address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RemoteTimeout   time.Duration `mapstructure:"remote_timeout"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
}

// log formats
const (
	LogFormatPlain = "plain"
	LogFormatJSON  = "json"
)

// DefaultConfig returns a configuration populated with default values
func DefaultConfig() Config {
	return Config{
		DBBackend:     "goleveldb",
		DBDir:         "data",
		SignerKeyFile: filepath.Join("config", "signer_key.json"),
		GenesisFile:   filepath.Join("config", "genesis.json"),
		TickInterval:  time.Second,
		Log: LogConfig{
			Level:  zerolog.InfoLevel,
			Format: LogFormatPlain,
		},
		API: APIConfig{
			ListenAddress:   "127.0.0.1:26680",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RemoteTimeout:   15 * time.Second,
			MetricsEnabled:  true,
			MetricsInterval: 10 * time.Second,
		},
	}
}

// ValidateBasic returns an error if the configuration cannot be used to run a union
func (c Config) ValidateBasic() error {
	if err := c.UnionID.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid union id: %w", err)
	}

	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}

	if c.Log.Format != LogFormatPlain && c.Log.Format != LogFormatJSON {
		return fmt.Errorf("unknown log format %s", c.Log.Format)
	}

	for _, peer := range c.Peers {
		if err := peer.ValidateBasic(); err != nil {
			return err
		}
	}

	return nil
}

// Path returns the path relative to the home directory. Absolute paths are returned unchanged.
func Path(home, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(home, path)
}

// FilePath returns the path of the config file in the given home directory
func FilePath(home string) string {
	return filepath.Join(home, "config", FileName+"."+fileType)
}

// NewViper returns a viper instance that reads the config file of the home directory and
// the environment. Every key of the default config can be overridden by UNION_<KEY>.
func NewViper(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(filepath.Join(home, "config"))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadConfig reads the configuration from the viper instance on top of the defaults.
// A missing config file is not an error.
func ReadConfig(v *viper.Viper) (Config, error) {
	conf := DefaultConfig()

	defaults, err := toMap(conf)
	if err != nil {
		return Config{}, err
	}
	setDefaults(v, "", defaults)

	if err := v.ReadInConfig(); err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return Config{}, err
	}

	if err := v.Unmarshal(&conf, AddDecodeHooks); err != nil {
		return Config{}, err
	}

	peers, err := ReadPeers(v)
	if err != nil {
		return Config{}, err
	}
	conf.Peers = MergePeers(conf.Peers, peers)

	return conf, nil
}

// WriteConfig writes the configuration as TOML to the given path
func WriteConfig(path string, conf Config) error {
	mapped, err := toMap(conf)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(fileType)
	if err := v.MergeConfigMap(mapped); err != nil {
		return err
	}

	return v.WriteConfigAs(path)
}

// setDefaults registers every leaf of the map so that environment overrides are picked up
func setDefaults(v *viper.Viper, prefix string, values map[string]interface{}) {
	for k, value := range values {
		if prefix != "" {
			k = prefix + "." + k
		}

		if nested, ok := value.(map[string]interface{}); ok {
			setDefaults(v, k, nested)
			continue
		}

		v.SetDefault(k, value)
	}
}

// toMap converts the config into a map keyed by mapstructure tags. Durations and levels are encoded as strings.
func toMap(conf Config) (map[string]interface{}, error) {
	mapped := make(map[string]interface{})
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &mapped})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(conf); err != nil {
		return nil, err
	}

	for k, value := range mapped {
		mapped[k] = encodeValue(value)
	}

	return mapped, nil
}

func encodeValue(value interface{}) interface{} {
	switch value := value.(type) {
	case time.Duration:
		return value.String()
	case zerolog.Level:
		return value.String()
	case union.Principal:
		return value.String()
	case LogConfig, APIConfig:
		nested, err := structToMap(value)
		if err != nil {
			panic(err)
		}

		return nested
	case map[string]interface{}:
		for k, v := range value {
			value[k] = encodeValue(v)
		}

		return value
	case []Peer:
		peers := make([]interface{}, 0, len(value))
		for _, peer := range value {
			peers = append(peers, map[string]interface{}{"id": peer.ID.String(), "address": peer.Address})
		}

		return peers
	default:
		return value
	}
}

func structToMap(value interface{}) (map[string]interface{}, error) {
	mapped := make(map[string]interface{})
	if err := mapstructure.Decode(value, &mapped); err != nil {
		return nil, err
	}

	for k, v := range mapped {
		mapped[k] = encodeValue(v)
	}

	return mapped, nil
}
