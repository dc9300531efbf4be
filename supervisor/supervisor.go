// Package supervisor starts and stops the pool of independent worker OS
// processes that make up a running queue: one self-re-exec child per
// worker, tracked by a single liveness file holding one PID per line, the
// supervisor's own PID first.
//
// Start is meant to be called from a persistent process — the one whose
// PID is recorded first in the liveness file and that stays alive for the
// lifetime of the fleet, blocking on NotifyShutdown and calling Stop
// in-process once signaled. The CLI command a user types merely launches
// that persistent process and returns; it is not itself the parent.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/duskhq/queuectl/internal/procutil"
	"github.com/duskhq/queuectl/internal/timerq"
)

// ErrAlreadyRunning is returned by Start when the liveness file already
// names a live process.
var ErrAlreadyRunning = errors.New("supervisor already running")

// GracePeriod is how long Stop waits for graceful shutdown before
// escalating to forced termination.
const GracePeriod = 5 * time.Second

// Config controls Start/Stop.
type Config struct {
	// LivenessPath is the well-known PID file path.
	LivenessPath string

	// WorkerArgs is appended to a re-exec of the current executable to
	// launch a single worker, e.g. []string{"worker", "run", "--id"}. The
	// worker's id is appended after WorkerArgs by Start.
	WorkerArgs []string

	// Env is appended to each spawned worker's environment.
	Env []string
}

// Start launches count worker processes and writes the liveness file. It
// returns after the file is written; the spawned processes keep running
// independently until Stop (or external signal) ends them.
func Start(cfg Config, count int) error {
	if _, ok := livePID(cfg.LivenessPath); ok {
		return ErrAlreadyRunning
	}

	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	pids := make([]int, 0, count+1)
	pids = append(pids, os.Getpid())

	for i := 0; i < count; i++ {
		workerID := fmt.Sprintf("worker-%d-%s", i+1, uuid.NewString()[:8])
		args := append(append([]string{}, cfg.WorkerArgs...), workerID)
		cmd := exec.Command(exePath, args...)
		cmd.Env = append(os.Environ(), cfg.Env...)
		procutil.Prepare(cmd)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start worker %s: %w", workerID, err)
		}
		pids = append(pids, cmd.Process.Pid)
	}

	return writeLiveness(cfg.LivenessPath, pids)
}

// Stop reads the liveness file, asks every listed process to shut down
// gracefully, waits up to GracePeriod for all of them concurrently, then
// escalates any stragglers to a forced kill, and removes the liveness
// file. Called in-process by the persistent supervisor on receipt of a
// shutdown signal.
func Stop(livenessPath string) error {
	pids, err := ReadLiveness(livenessPath)
	if err != nil {
		return err
	}

	procs := make([]*os.Process, 0, len(pids))
	for _, pid := range pids {
		if pid == os.Getpid() {
			continue
		}
		if p, err := os.FindProcess(pid); err == nil {
			procs = append(procs, p)
		}
	}

	for _, p := range procs {
		_ = signalGraceful(p)
	}

	deadline := time.Now().Add(GracePeriod)
	var wg sync.WaitGroup
	for _, p := range procs {
		wg.Add(1)
		go func(p *os.Process) {
			defer wg.Done()
			for time.Now().Before(deadline) && isAlive(p) {
				time.Sleep(50 * time.Millisecond)
			}
			if isAlive(p) {
				_ = signalForce(p)
			}
		}(p)
	}
	<-timerq.WrapWaitGroup(&wg)

	return os.Remove(livenessPath)
}

// RequestStop asks the persistent supervisor process — the liveness
// file's first pid — to shut down gracefully, then waits for it to
// remove the liveness file itself. If it hasn't done so within
// GracePeriod, RequestStop forcibly kills every listed process and removes
// the liveness file itself rather than leaving the fleet stranded.
func RequestStop(livenessPath string) error {
	pids, err := ReadLiveness(livenessPath)
	if err != nil {
		return err
	}
	if len(pids) == 0 {
		return os.Remove(livenessPath)
	}

	if p, err := os.FindProcess(pids[0]); err == nil {
		_ = signalGraceful(p)
	}

	deadline := time.Now().Add(GracePeriod)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(livenessPath); os.IsNotExist(err) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	// The graceful window has already elapsed: escalate straight to a
	// forced kill instead of granting a second one.
	for _, pid := range pids {
		if pid == os.Getpid() {
			continue
		}
		if p, err := os.FindProcess(pid); err == nil && isAlive(p) {
			_ = signalForce(p)
		}
	}
	return os.Remove(livenessPath)
}

// WaitUntilRunning polls path until it names a live process or timeout
// elapses. The CLI's start command uses this after launching the
// persistent supervisor process, to return only once that process has
// taken over the liveness file.
func WaitUntilRunning(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if AlreadyRunning(path) {
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fmt.Errorf("supervisor did not report ready within %s", timeout)
}

// AlreadyRunning reports whether the liveness file at path points at a
// live process.
func AlreadyRunning(path string) bool {
	_, ok := livePID(path)
	return ok
}

func livePID(path string) (int, bool) {
	pids, err := ReadLiveness(path)
	if err != nil || len(pids) == 0 {
		return 0, false
	}
	p, err := os.FindProcess(pids[0])
	if err != nil {
		return 0, false
	}
	if !isAlive(p) {
		_ = os.Remove(path)
		return 0, false
	}
	return pids[0], true
}

func isAlive(p *os.Process) bool {
	return p.Signal(syscall.Signal(0)) == nil
}

func signalGraceful(p *os.Process) error {
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.Signal(syscall.SIGTERM)
}

func signalForce(p *os.Process) error {
	return p.Kill()
}

func writeLiveness(path string, pids []int) error {
	lines := make([]string, len(pids))
	for i, pid := range pids {
		lines[i] = strconv.Itoa(pid)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// ReadLiveness reads and parses a liveness file, skipping malformed lines.
func ReadLiveness(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
