package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
)

func newDLQCmd(configPath *string) *cobra.Command {
	dlq := &cobra.Command{
		Use:   "dlq",
		Short: "Dead-letter queue operations",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dead jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}
			a := admin.New(s, cfg.LogDir())
			jobs, err := a.DLQList(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printJobTable(cmd, jobs)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to print, 0 for unbounded")

	retryCmd := &cobra.Command{
		Use:   "retry <id>",
		Short: "Move a dead job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}
			a := admin.New(s, cfg.LogDir())
			j, err := a.DLQRetry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (state=%s)\n", j.ID, j.State)
			return nil
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove every dead job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}
			a := admin.New(s, cfg.LogDir())
			n, err := a.DLQPurge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d dead job(s)\n", n)
			return nil
		},
	}

	dlq.AddCommand(listCmd, retryCmd, purgeCmd)
	return dlq
}
