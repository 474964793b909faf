// Package config loads the shard wallet configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ruteri/shardwallet/chains"
	"github.com/ruteri/shardwallet/common"
	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/erasure"
)

// Defaults applied by Parse to unset fields.
const (
	DefaultDataShards   = 2
	DefaultParityShards = 3
	DefaultKDF          = "argon2id"
	DefaultAEAD         = "aes-gcm"
	DefaultService      = "shardwallet"
)

// SchemeConfig is the erasure coding scheme used by the codec operations.
type SchemeConfig struct {
	DataShards   int `yaml:"data_shards"`
	ParityShards int `yaml:"parity_shards"`
}

// EncryptionConfig names the shard cipher algorithms.
type EncryptionConfig struct {
	KDF  string `yaml:"kdf"`  // scrypt, pbkdf2 or argon2id
	AEAD string `yaml:"aead"` // aes-gcm or xchacha20-poly1305
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Debug   bool   `yaml:"debug"`
	JSON    bool   `yaml:"json"`
	Service string `yaml:"service"`
	UID     bool   `yaml:"uid"`
}

// MetricsConfig toggles the Prometheus counters.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the top-level configuration.
type Config struct {
	Scheme     SchemeConfig     `yaml:"scheme"`
	Encryption EncryptionConfig `yaml:"encryption"`
	Chain      chains.Config    `yaml:"chain"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Scheme.DataShards == 0 && c.Scheme.ParityShards == 0 {
		c.Scheme.DataShards = DefaultDataShards
		c.Scheme.ParityShards = DefaultParityShards
	}
	if c.Encryption.KDF == "" {
		c.Encryption.KDF = DefaultKDF
	}
	if c.Encryption.AEAD == "" {
		c.Encryption.AEAD = DefaultAEAD
	}
	if c.Chain.Kind == "" {
		c.Chain.Kind = chains.Polkadot
	}
	c.Chain.Kind = chains.Kind(strings.ToLower(strings.TrimSpace(string(c.Chain.Kind))))
	if c.Logging.Service == "" {
		c.Logging.Service = DefaultService
	}
}

// Validate checks that every value names something that exists.
func (c *Config) Validate() error {
	var errs []error
	if c.Scheme.DataShards < 1 {
		errs = append(errs, fmt.Errorf("scheme.data_shards must be at least 1"))
	}
	if c.Scheme.ParityShards < 0 {
		errs = append(errs, fmt.Errorf("scheme.parity_shards must not be negative"))
	}
	if c.Scheme.DataShards+c.Scheme.ParityShards > erasure.MaxShards {
		errs = append(errs, fmt.Errorf("scheme allows at most %d fragments", erasure.MaxShards))
	}
	if _, err := cryptoutils.ParseKDF(c.Encryption.KDF); err != nil {
		errs = append(errs, fmt.Errorf("encryption.kdf: %w", err))
	}
	if _, err := cryptoutils.ParseAEAD(c.Encryption.AEAD); err != nil {
		errs = append(errs, fmt.Errorf("encryption.aead: %w", err))
	}
	if _, err := chains.New(c.Chain); err != nil {
		errs = append(errs, fmt.Errorf("chain: %w", err))
	}
	return errors.Join(errs...)
}

// ShardCipher returns the configured cipher.
func (c *Config) ShardCipher() (cryptoutils.ShardCipher, error) {
	kdf, err := cryptoutils.ParseKDF(c.Encryption.KDF)
	if err != nil {
		return cryptoutils.ShardCipher{}, err
	}
	aead, err := cryptoutils.ParseAEAD(c.Encryption.AEAD)
	if err != nil {
		return cryptoutils.ShardCipher{}, err
	}
	return cryptoutils.ShardCipher{KeyDerivation: kdf, Encryption: aead}, nil
}

// ChainConfig returns the configured chain selection.
func (c *Config) ChainConfig() chains.Config {
	return c.Chain
}

// LoggingOpts returns the options for common.SetupLogger.
func (c *Config) LoggingOpts() *common.LoggingOpts {
	return &common.LoggingOpts{
		Debug:   c.Logging.Debug,
		JSON:    c.Logging.JSON,
		Service: c.Logging.Service,
		Version: common.Version,
		UID:     c.Logging.UID,
	}
}
