package supervisor_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/duskhq/queuectl/supervisor"
)

func writeLivenessFile(t *testing.T, path string, pids []int) {
	t.Helper()
	lines := ""
	for _, pid := range pids {
		lines += strconv.Itoa(pid) + "\n"
	}
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadLivenessSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pids")
	if err := os.WriteFile(path, []byte("123\nnot-a-pid\n\n456\n"), 0644); err != nil {
		t.Fatal(err)
	}
	pids, err := supervisor.ReadLiveness(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pids) != 2 || pids[0] != 123 || pids[1] != 456 {
		t.Fatalf("unexpected pids: %v", pids)
	}
}

func TestAlreadyRunningTrueForLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pids")
	writeLivenessFile(t, path, []int{os.Getpid()})
	if !supervisor.AlreadyRunning(path) {
		t.Fatal("expected AlreadyRunning true for this process's own pid")
	}
}

func TestAlreadyRunningFalseAndCleansStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pids")
	// A pid vanishingly unlikely to be alive.
	writeLivenessFile(t, path, []int{999999})
	if supervisor.AlreadyRunning(path) {
		t.Fatal("expected AlreadyRunning false for a dead pid")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected stale liveness file to be removed")
	}
}

func TestStopTerminatesListedProcesses(t *testing.T) {
	// Two sleeps stand in for a worker fleet, so Stop's concurrent wait
	// loop is actually exercised rather than degenerating to one process.
	var dones []chan struct{}
	pids := []int{os.Getpid()} // supervisor's own pid first; Stop skips it.
	for i := 0; i < 2; i++ {
		cmd := exec.Command("sleep", "30")
		if err := cmd.Start(); err != nil {
			t.Fatal(err)
		}
		pids = append(pids, cmd.Process.Pid)
		done := make(chan struct{})
		dones = append(dones, done)
		go func(cmd *exec.Cmd, done chan struct{}) {
			_ = cmd.Wait()
			close(done)
		}(cmd, done)
	}

	path := filepath.Join(t.TempDir(), "pids")
	writeLivenessFile(t, path, pids)

	if err := supervisor.Stop(path); err != nil {
		t.Fatal(err)
	}

	for _, done := range dones {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("child process was not terminated")
		}
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected liveness file to be removed after Stop")
	}
}

func TestRequestStopWaitsForGracefulParentCleanup(t *testing.T) {
	// A shell that removes the liveness file itself on SIGTERM, standing
	// in for the persistent "worker supervise" process handling its own
	// shutdown signal in-process.
	path := filepath.Join(t.TempDir(), "pids")

	script := fmt.Sprintf(`trap 'rm -f %q; exit 0' TERM; while true; do sleep 0.05; done`, path)
	cmd := exec.Command("sh", "-c", script)
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	defer cmd.Process.Kill()

	writeLivenessFile(t, path, []int{cmd.Process.Pid})

	if err := supervisor.RequestStop(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected the parent's own cleanup to remove the liveness file")
	}
}

func TestRequestStopForcesCleanupWhenParentUnresponsive(t *testing.T) {
	cmd := exec.Command("sh", "-c", "trap '' TERM; while true; do sleep 0.05; done")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	defer cmd.Process.Kill()

	path := filepath.Join(t.TempDir(), "pids")
	writeLivenessFile(t, path, []int{cmd.Process.Pid})

	done := make(chan error, 1)
	go func() { done <- supervisor.RequestStop(path) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(supervisor.GracePeriod + 3*time.Second):
		t.Fatal("RequestStop did not escalate to a forced stop in time")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected forced cleanup to remove the liveness file")
	}
}
