//go:build windows

package procutil

import (
	"os/exec"
	"strconv"
)

func prepare(cmd *exec.Cmd) {
	// Each child gets its own console/process group by default on
	// Windows when launched via exec.Command without job-object sharing;
	// taskkill /T targets the whole tree by pid below.
}

func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return exec.Command("taskkill", "/T", "/PID", strconv.Itoa(cmd.Process.Pid)).Run()
}

func kill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(cmd.Process.Pid)).Run()
}
