package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskhq/queuectl/internal/appconfig"
	"github.com/duskhq/queuectl/internal/procutil"
	"github.com/duskhq/queuectl/store"
	"github.com/duskhq/queuectl/supervisor"
	"github.com/duskhq/queuectl/worker"
)

// readyTimeout bounds how long worker start waits for the detached
// supervisor process to write the liveness file before giving up.
const readyTimeout = 5 * time.Second

func newWorkerCmd(configPath *string) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage the worker process fleet",
	}

	var startCount int
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a fleet of worker processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			if err := requireInitialized(cmd.Context(), s); err != nil {
				s.Close()
				return err
			}
			s.Close() // the supervisor and its workers open their own handles.

			if supervisor.AlreadyRunning(appCfg.LivenessPath()) {
				return supervisor.ErrAlreadyRunning
			}

			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}

			superviseArgs := []string{"worker", "supervise", "--count", strconv.Itoa(startCount)}
			if *configPath != "" {
				superviseArgs = append(superviseArgs, "--config", *configPath)
			}

			logPath := filepath.Join(appCfg.LogDir(), "supervisor.log")
			if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				return err
			}
			defer logFile.Close()

			proc := exec.Command(exePath, superviseArgs...)
			proc.Env = os.Environ()
			proc.Stdout = logFile
			proc.Stderr = logFile
			procutil.Prepare(proc)
			if err := proc.Start(); err != nil {
				return fmt.Errorf("start supervisor: %w", err)
			}

			if err := supervisor.WaitUntilRunning(appCfg.LivenessPath(), readyTimeout); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "started %d worker(s), supervisor pid %d\n", startCount, proc.Process.Pid)
			return nil
		},
	}
	startCmd.Flags().IntVar(&startCount, "count", 1, "number of worker processes to start")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running worker fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := loadAppConfig(*configPath)
			if err != nil {
				return err
			}
			if !supervisor.AlreadyRunning(appCfg.LivenessPath()) {
				return fmt.Errorf("%w: no worker fleet is running", store.ErrStateMismatch)
			}
			if err := supervisor.RequestStop(appCfg.LivenessPath()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "worker fleet stopped")
			return nil
		},
	}

	var superviseCount int
	superviseCmd := &cobra.Command{
		Use:    "supervise",
		Short:  "Spawn the worker fleet and own the liveness file until signaled",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			if err := requireInitialized(cmd.Context(), s); err != nil {
				s.Close()
				return err
			}
			s.Close()

			workerArgs := []string{"worker", "run"}
			if *configPath != "" {
				workerArgs = append(workerArgs, "--config", *configPath)
			}
			workerArgs = append(workerArgs, "--id")

			if err := supervisor.Start(supervisor.Config{
				LivenessPath: appCfg.LivenessPath(),
				WorkerArgs:   workerArgs,
			}, superviseCount); err != nil {
				return err
			}

			<-supervisor.NotifyShutdown()
			return supervisor.Stop(appCfg.LivenessPath())
		},
	}
	superviseCmd.Flags().IntVar(&superviseCount, "count", 1, "number of worker processes to start")

	var workerID string
	runCmd := &cobra.Command{
		Use:    "run",
		Short:  "Run a single worker loop in the foreground",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, s, err := openStore(*configPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := requireInitialized(cmd.Context(), s); err != nil {
				return err
			}

			log := appconfig.NewLogger(appCfg)
			w := worker.New(s, worker.Config{
				ID:           workerID,
				LogDir:       appCfg.LogDir(),
				PollInterval: appCfg.PollInterval,
			}, log)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()
			w.Run(ctx)
			return nil
		},
	}
	runCmd.Flags().StringVar(&workerID, "id", "", "stable identifier for this worker")

	workerCmd.AddCommand(startCmd, stopCmd, superviseCmd, runCmd)
	return workerCmd
}
