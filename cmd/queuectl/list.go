package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
	"github.com/duskhq/queuectl/job"
)

func newListCmd(configPath *string) *cobra.Command {
	var (
		state string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}

			st := job.Unknown
			if state != "" {
				st, err = job.ParseStatus(state)
				if err != nil {
					return err
				}
			}

			a := admin.New(s, cfg.LogDir())
			jobs, err := a.List(cmd.Context(), st, limit)
			if err != nil {
				return err
			}
			printJobTable(cmd, jobs)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by state (omit to list every state)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to print, 0 for unbounded")
	return cmd
}

func printJobTable(cmd *cobra.Command, jobs []*job.Job) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-10s %-8s %-9s %s\n", "ID", "STATE", "ATTEMPTS", "PRIORITY", "COMMAND")
	for _, j := range jobs {
		fmt.Fprintf(out, "%-20s %-10s %-8d %-9d %s\n", j.ID, j.State, j.Attempts, j.Priority, j.Command)
	}
}
