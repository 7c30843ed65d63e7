// Package config loads the govlock node configuration from TOML with
// GOVLOCK_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"govlock/coin"
	"govlock/contract/governance"
	"govlock/contract/locker"
	"govlock/platform"
	"govlock/sdk"
)

const (
	EnvPrefix = "GOVLOCK"
	FileName  = "config.toml"
)

var ErrInvalidConfig = errors.New("invalid config")

type Store struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Chain struct {
	ChainID      string `mapstructure:"chain_id"`
	StartHeight  uint64 `mapstructure:"start_height"`
	StartTime    uint64 `mapstructure:"start_time"`
	BlockSeconds uint64 `mapstructure:"block_seconds"`
}

type Tier struct {
	Period uint64 `mapstructure:"period"`
	Weight string `mapstructure:"weight"`
}

type Locker struct {
	Address      string `mapstructure:"address"`
	T1           Tier   `mapstructure:"t1"`
	T2           Tier   `mapstructure:"t2"`
	T3           Tier   `mapstructure:"t3"`
	T4           Tier   `mapstructure:"t4"`
	UnlockPeriod uint64 `mapstructure:"unlock_period"`
}

type Governance struct {
	Address   string `mapstructure:"address"`
	Threshold string `mapstructure:"threshold"`
	Quorum    string `mapstructure:"quorum"`
	Admin     string `mapstructure:"admin"`
}

type App struct {
	ID               uint64 `mapstructure:"id"`
	Name             string `mapstructure:"name"`
	MinGovDeposit    string `mapstructure:"min_gov_deposit"`
	GovTimeInSeconds uint64 `mapstructure:"gov_time_in_seconds"`
	GovTokenID       uint64 `mapstructure:"gov_token_id"`
}

type Asset struct {
	ID    uint64 `mapstructure:"id"`
	Denom string `mapstructure:"denom"`
}

type Platform struct {
	Apps   []App   `mapstructure:"apps"`
	Assets []Asset `mapstructure:"assets"`
}

type Config struct {
	Store      Store      `mapstructure:"store"`
	Log        Log        `mapstructure:"log"`
	Chain      Chain      `mapstructure:"chain"`
	Locker     Locker     `mapstructure:"locker"`
	Governance Governance `mapstructure:"governance"`
	Platform   Platform   `mapstructure:"platform"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "badger")
	v.SetDefault("store.path", "data")
	v.SetDefault("store.in_memory", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("chain.chain_id", "govlock-local")
	v.SetDefault("chain.start_height", 1)
	v.SetDefault("chain.start_time", 1_700_000_000)
	v.SetDefault("chain.block_seconds", 5)

	v.SetDefault("locker.address", "contract:locker")
	v.SetDefault("locker.t1.period", 604_800)
	v.SetDefault("locker.t1.weight", "0.25")
	v.SetDefault("locker.t2.period", 1_209_600)
	v.SetDefault("locker.t2.weight", "0.5")
	v.SetDefault("locker.t3.period", 1_814_400)
	v.SetDefault("locker.t3.weight", "0.75")
	v.SetDefault("locker.t4.period", 2_419_200)
	v.SetDefault("locker.t4.weight", "1")
	v.SetDefault("locker.unlock_period", 604_800)

	v.SetDefault("governance.address", "contract:gov")
	v.SetDefault("governance.threshold", "0.5")
	v.SetDefault("governance.quorum", "0.33")
	v.SetDefault("governance.admin", "admin")
}

// Load reads path (when set) over the defaults. Environment variables win
// over the file, e.g. GOVLOCK_LOG_LEVEL=debug.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks what the runtime cannot recover from later.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("%w: store.backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if c.Chain.BlockSeconds == 0 {
		return fmt.Errorf("%w: chain.block_seconds must be positive", ErrInvalidConfig)
	}
	for _, addr := range []string{c.Locker.Address, c.Governance.Address, c.Governance.Admin} {
		if _, err := sdk.ValidateAddress(addr); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := c.LockerInit(); err != nil {
		return err
	}
	if _, err := c.GovernanceInit(); err != nil {
		return err
	}
	if _, err := c.Apps(); err != nil {
		return err
	}
	return nil
}

// StorePath resolves a relative store path against home.
func (c *Config) StorePath(home string) string {
	if filepath.IsAbs(c.Store.Path) || home == "" {
		return c.Store.Path
	}
	return filepath.Join(home, c.Store.Path)
}

func (t Tier) periodWeight(name string) (locker.PeriodWeight, error) {
	w, err := coin.ParseDecimal(t.Weight)
	if err != nil {
		return locker.PeriodWeight{}, fmt.Errorf("%w: locker.%s.weight: %v", ErrInvalidConfig, name, err)
	}
	return locker.PeriodWeight{Period: t.Period, Weight: w}, nil
}

// LockerInit is the instantiate message for the locker.
func (c *Config) LockerInit() (locker.InstantiateMsg, error) {
	msg := locker.InstantiateMsg{UnlockPeriod: c.Locker.UnlockPeriod}
	tiers := []struct {
		name string
		in   Tier
		out  *locker.PeriodWeight
	}{
		{"t1", c.Locker.T1, &msg.T1},
		{"t2", c.Locker.T2, &msg.T2},
		{"t3", c.Locker.T3, &msg.T3},
		{"t4", c.Locker.T4, &msg.T4},
	}
	for _, t := range tiers {
		pw, err := t.in.periodWeight(t.name)
		if err != nil {
			return msg, err
		}
		*t.out = pw
	}
	return msg, nil
}

// GovernanceInit is the instantiate message for governance.
func (c *Config) GovernanceInit() (governance.InstantiateMsg, error) {
	th, err := coin.ParseDecimal(c.Governance.Threshold)
	if err != nil {
		return governance.InstantiateMsg{}, fmt.Errorf("%w: governance.threshold: %v", ErrInvalidConfig, err)
	}
	q, err := coin.ParseDecimal(c.Governance.Quorum)
	if err != nil {
		return governance.InstantiateMsg{}, fmt.Errorf("%w: governance.quorum: %v", ErrInvalidConfig, err)
	}
	return governance.InstantiateMsg{
		Threshold:       governance.NewThresholdQuorum(th, q),
		LockingContract: c.Locker.Address,
	}, nil
}

// Apps converts the platform app table.
func (c *Config) Apps() ([]platform.App, error) {
	out := make([]platform.App, 0, len(c.Platform.Apps))
	for _, a := range c.Platform.Apps {
		minDeposit := coin.ZeroAmount()
		if a.MinGovDeposit != "" {
			var err error
			if minDeposit, err = coin.ParseAmount(a.MinGovDeposit); err != nil {
				return nil, fmt.Errorf("%w: platform app %d min_gov_deposit: %v", ErrInvalidConfig, a.ID, err)
			}
		}
		out = append(out, platform.App{
			ID:               a.ID,
			Name:             a.Name,
			MinGovDeposit:    minDeposit,
			GovTimeInSeconds: a.GovTimeInSeconds,
			GovTokenID:       a.GovTokenID,
		})
	}
	return out, nil
}

func (c *Config) Assets() []platform.Asset {
	out := make([]platform.Asset, 0, len(c.Platform.Assets))
	for _, a := range c.Platform.Assets {
		out = append(out, platform.Asset{ID: a.ID, Denom: a.Denom})
	}
	return out
}

// WriteTemplate writes the default config to path unless a file is already there.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Template), 0o644)
}
