package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"govlock/coin"
	"govlock/config"
	"govlock/contract/codec"
	"govlock/sdk"
)

func configCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the node config",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.v.GetString("config")
			if path == "" {
				path = filepath.Join(o.home(), config.FileName)
			}
			if err := config.WriteTemplate(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	})
	return cmd
}

func initCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Register the configured platform tables and instantiate both contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withNode(func(n *node) error {
				for _, a := range n.cfg.Assets() {
					if err := n.rt.RegisterAsset(a); err != nil {
						return err
					}
				}
				apps, err := n.cfg.Apps()
				if err != nil {
					return err
				}
				for _, a := range apps {
					if err := n.rt.RegisterApp(a); err != nil {
						return err
					}
				}

				admin := sdk.Address(n.cfg.Governance.Admin)
				lockerInit, err := n.cfg.LockerInit()
				if err != nil {
					return err
				}
				raw, err := codec.Marshal(lockerInit)
				if err != nil {
					return err
				}
				if _, err := n.rt.Instantiate(sdk.Address(n.cfg.Locker.Address), admin, raw, nil); err != nil {
					return fmt.Errorf("instantiate locker: %w", err)
				}

				govInit, err := n.cfg.GovernanceInit()
				if err != nil {
					return err
				}
				if raw, err = codec.Marshal(govInit); err != nil {
					return err
				}
				if _, err := n.rt.Instantiate(sdk.Address(n.cfg.Governance.Address), admin, raw, nil); err != nil {
					return fmt.Errorf("instantiate governance: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "instantiated %s and %s at height %d\n",
					n.cfg.Locker.Address, n.cfg.Governance.Address, n.rt.Block().Height)
				return nil
			})
		},
	}
}

func fundCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "fund <address> <coins>",
		Short:   "Mint coins into an account",
		Example: "  govlock fund alice 1000ucmdx,50uatom",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := coin.ParseCoins(args[1])
			if err != nil {
				return err
			}
			return o.withNode(func(n *node) error {
				if err := n.rt.Fund(sdk.Address(args[0]), cs); err != nil {
					return err
				}
				return printBalance(cmd, n, sdk.Address(args[0]))
			})
		},
	}
}

func printBalance(cmd *cobra.Command, n *node, addr sdk.Address) error {
	bal, err := n.rt.Balance(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", addr, bal)
	return nil
}

func balanceCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the bank balances of an account or contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withNode(func(n *node) error {
				return printBalance(cmd, n, n.resolve(args[0]))
			})
		},
	}
}

func blockCmd(o *rootOptions) *cobra.Command {
	var advance, height, unix uint64
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Show or move the block clock",
		Example: "  govlock block --advance 720\n" +
			"  govlock block --height 100 --time 1700003600",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withNode(func(n *node) error {
				switch {
				case advance > 0:
					if err := n.rt.AdvanceBlocks(advance); err != nil {
						return err
					}
				case cmd.Flags().Changed("height") || cmd.Flags().Changed("time"):
					cur := n.rt.Block()
					if !cmd.Flags().Changed("height") {
						height = cur.Height
					}
					if !cmd.Flags().Changed("time") {
						unix = cur.Time
					}
					if err := n.rt.SetBlock(height, unix); err != nil {
						return err
					}
				}
				b := n.rt.Block()
				fmt.Fprintf(cmd.OutOrStdout(), "height %d time %d\n", b.Height, b.Time)
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&advance, "advance", 0, "Blocks to move forward")
	cmd.Flags().Uint64Var(&height, "height", 0, "Set the height directly")
	cmd.Flags().Uint64Var(&unix, "time", 0, "Set the unix time directly")
	cmd.MarkFlagsMutuallyExclusive("advance", "height")
	cmd.MarkFlagsMutuallyExclusive("advance", "time")
	return cmd
}

func execCmd(o *rootOptions) *cobra.Command {
	var from, funds string
	cmd := &cobra.Command{
		Use:     "exec <contract> <json>",
		Short:   "Execute a contract message",
		Example: `  govlock exec locker '{"lock":{"app_id":1,"locking_period":"t1"}}' --from alice --funds 100ucmdx`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := coin.ParseCoins(funds)
			if err != nil {
				return err
			}
			return o.withNode(func(n *node) error {
				res, err := n.rt.Execute(n.resolve(args[0]), sdk.Address(from), []byte(args[1]), cs)
				if err != nil {
					return err
				}
				raw, err := codec.Marshal(res)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), raw)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Sender address")
	cmd.Flags().StringVar(&funds, "funds", "", "Coins attached to the call, e.g. 100ucmdx")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func queryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "query <contract> <json>",
		Short:   "Run a contract query against committed state",
		Example: `  govlock query gov '{"proposal":{"proposal_id":1}}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withNode(func(n *node) error {
				out, err := n.rt.Query(n.resolve(args[0]), []byte(args[1]))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}

func sudoCmd(o *rootOptions) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:     "sudo <contract> <json>",
		Short:   "Run a privileged message, admin only",
		Example: `  govlock sudo gov '{"update_locking_contract":{"address":"contract:locker2"}}' --from admin`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withNode(func(n *node) error {
				if from != n.cfg.Governance.Admin {
					return fmt.Errorf("%w: %q", ErrNotAdmin, from)
				}
				res, err := n.rt.Sudo(n.resolve(args[0]), []byte(args[1]))
				if err != nil {
					return err
				}
				raw, err := codec.Marshal(res)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), raw)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Caller, must match governance.admin")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
