package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/internal/appconfig"
	"github.com/duskhq/queuectl/store"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "queuectl",
		Short:         "A durable, process-pool-backed background job queue",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a queuectl config file")

	root.AddCommand(
		newInitCmd(&configPath),
		newEnqueueCmd(&configPath),
		newListCmd(&configPath),
		newDLQCmd(&configPath),
		newConfigCmd(&configPath),
		newWorkerCmd(&configPath),
		newStatusCmd(&configPath),
		newLogsCmd(&configPath),
	)
	return root
}

// openStore loads configuration, ensures the data directory and log
// directory exist, and opens (without initializing) the store.
func openStore(configPath string) (*appconfig.Config, *store.Store, error) {
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.LogDir(), 0755); err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg.StoreDBPath(), cfg.LockTimeout)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func requireInitialized(ctx context.Context, s *store.Store) error {
	return store.InitDB(ctx, s.DB())
}

// loadAppConfig loads configuration without opening the store, for
// commands (worker stop) that only need paths.
func loadAppConfig(configPath string) (*appconfig.Config, error) {
	return appconfig.Load(configPath)
}
