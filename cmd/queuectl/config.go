package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write queue policy configuration (max_retries, backoff_base)",
	}

	getCmd := &cobra.Command{
		Use:  "get <key>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}
			a := admin.New(s, appCfg.LogDir())
			v, err := a.ConfigGet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:  "set <key> <value>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}
			a := admin.New(s, appCfg.LogDir())
			if err := a.ConfigSet(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])
			return nil
		},
	}

	cfgCmd.AddCommand(getCmd, setCmd)
	return cfgCmd
}
