package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/store"
)

func newInitCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the job store and its tables if absent",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := store.InitDB(cmd.Context(), s.DB()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "queue store initialized")
			return nil
		},
	}
}
