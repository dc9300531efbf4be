package main

import (
	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
)

func newLogsCmd(configPath *string) *cobra.Command {
	var stderr bool

	cmd := &cobra.Command{
		Use:   "logs <id>",
		Short: "Print the captured output of a job's most recent attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			a := admin.New(s, cfg.LogDir())
			data, err := a.Logs(args[0], stderr)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&stderr, "stderr", false, "print captured stderr instead of stdout")
	return cmd
}
