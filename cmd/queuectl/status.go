package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/admin"
	"github.com/duskhq/queuectl/job"
)

func newStatusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize job counts by state and the live worker fleet",
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
			st, err := a.Status(cmd.Context(), cfg.LivenessPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, state := range []job.Status{job.Scheduled, job.Pending, job.Processing, job.Completed, job.Failed, job.Dead} {
				fmt.Fprintf(out, "%-10s %d\n", state, st.Counts[state])
			}
			if st.FleetActive {
				fmt.Fprintf(out, "fleet: running, pids=%v\n", st.WorkerPIDs)
			} else {
				fmt.Fprintln(out, "fleet: not running")
			}
			return nil
		},
	}
}
