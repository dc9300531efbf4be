package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
	"github.com/duskhq/queuectl/jobspec"
)

func newEnqueueCmd(configPath *string) *cobra.Command {
	var (
		priority   int
		timeoutSec int
		runAt      string
		maxRetries int
	)

	cmd := &cobra.Command{
		Use:   "enqueue <id> <command>",
		Short: "Insert a new job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}

			spec := &jobspec.JobSpec{
				ID:       args[0],
				Command:  args[1],
				Priority: priority,
			}
			if timeoutSec > 0 {
				d := time.Duration(timeoutSec) * time.Second
				spec.Timeout = &d
			}
			if runAt != "" {
				t, err := jobspec.ParseRunAt(runAt)
				if err != nil {
					return err
				}
				spec.RunAt = &t
			}
			if cmd.Flags().Changed("max-retries") {
				mr := uint32(maxRetries)
				spec.MaxRetries = &mr
			}

			a := admin.New(s, cfg.LogDir())
			j, err := a.Enqueue(cmd.Context(), spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s (state=%s)\n", j.ID, j.State)
			return nil
		},
	}

	cmd.Flags().IntVar(&priority, "priority", 0, "job priority, higher runs first")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "per-attempt timeout in seconds")
	cmd.Flags().StringVar(&runAt, "run-at", "", "earliest eligible execution time, ISO-8601")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "override the configured max_retries for this job")
	return cmd
}
