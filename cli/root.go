// Package cli is the govlock command tree. Every command opens the store
// under --home, runs one operation on the host runtime and closes it again.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"govlock/config"
	"govlock/contract/governance"
	"govlock/contract/locker"
	"govlock/host"
	"govlock/logging"
	"govlock/sdk"
	"govlock/store"
)

var ErrNotAdmin = errors.New("sudo is reserved to the configured admin")

// node is one opened runtime plus what has to be released after the command.
type node struct {
	cfg     *config.Config
	rt      *host.Runtime
	logger  *zap.Logger
	closers []func() error
}

func (n *node) close() error {
	var errs []error
	for i := len(n.closers) - 1; i >= 0; i-- {
		errs = append(errs, n.closers[i]())
	}
	return errors.Join(errs...)
}

// resolve maps the "locker" and "gov" aliases onto the configured addresses.
func (n *node) resolve(name string) sdk.Address {
	switch strings.ToLower(name) {
	case "locker":
		return sdk.Address(n.cfg.Locker.Address)
	case "gov", "governance":
		return sdk.Address(n.cfg.Governance.Address)
	}
	return sdk.Address(name)
}

type rootOptions struct {
	v *viper.Viper
}

func (o *rootOptions) home() string {
	return o.v.GetString("home")
}

// configPath is --config when given, else config.toml under home when present.
func (o *rootOptions) configPath() string {
	if p := o.v.GetString("config"); p != "" {
		return p
	}
	p := filepath.Join(o.home(), config.FileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath())
	if err != nil {
		return nil, err
	}
	if lvl := o.v.GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

func (o *rootOptions) open() (*node, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	n := &node{cfg: cfg, logger: logger}
	n.closers = append(n.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	var backend sdk.State
	switch cfg.Store.Backend {
	case "memory":
		backend = store.NewMemory()
	default:
		db, err := store.OpenBadger(cfg.StorePath(o.home()), cfg.Store.InMemory, logger.Named("badger"))
		if err != nil {
			return nil, err
		}
		n.closers = append(n.closers, db.Close)
		backend = db
	}

	rt, err := host.New(backend, host.Options{
		ChainID:      cfg.Chain.ChainID,
		StartHeight:  cfg.Chain.StartHeight,
		StartTime:    cfg.Chain.StartTime,
		BlockSeconds: cfg.Chain.BlockSeconds,
		Logger:       logger.Named("host"),
		Registerer:   prometheus.NewRegistry(),
	})
	if err != nil {
		_ = n.close()
		return nil, err
	}
	if err := rt.Register(sdk.Address(cfg.Locker.Address), locker.New()); err != nil {
		_ = n.close()
		return nil, err
	}
	if err := rt.Register(sdk.Address(cfg.Governance.Address), governance.New(rt.Platform(), rt.LockerResolver())); err != nil {
		_ = n.close()
		return nil, err
	}
	n.rt = rt
	return n, nil
}

// withNode runs fn on an opened node and always closes it.
func (o *rootOptions) withNode(fn func(n *node) error) (err error) {
	n, err := o.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := n.close(); err == nil {
			err = cerr
		}
	}()
	return fn(n)
}

// NewRootCmd builds the command tree. Flags are bound through viper so
// GOVLOCK_HOME and friends work as well.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}
	o.v.SetEnvPrefix(config.EnvPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "govlock",
		Short:         "Token locking and governance engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	home, _ := os.UserHomeDir()
	root.PersistentFlags().String("home", filepath.Join(home, ".govlock"), "Node home directory holding config.toml and the store")
	root.PersistentFlags().String("config", "", "Path to the config file, defaults to <home>/config.toml")
	root.PersistentFlags().String("log-level", "", "Override the configured log level, e.g. debug")
	_ = o.v.BindPFlag("home", root.PersistentFlags().Lookup("home"))
	_ = o.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = o.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		configCmd(o),
		initCmd(o),
		fundCmd(o),
		blockCmd(o),
		execCmd(o),
		queryCmd(o),
		sudoCmd(o),
		balanceCmd(o),
	)
	return root
}

// Execute runs the tree against os.Args and reports failures on stderr.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printJSON(w io.Writer, raw []byte) error {
	_, err := fmt.Fprintln(w, string(raw))
	return err
}
