// Package fava supervises the fava ledger-visualization process and proxies
// HTTP requests to it.
package fava

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// State is the lifecycle state of the supervised process.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

const stopTimeout = 5 * time.Second

// Manager owns the fava process handle and its state transitions. All
// transitions happen under one mutex; there is no shared mutable state
// outside the Manager.
type Manager struct {
	command  string
	mainPath string

	mu     sync.Mutex
	state  State
	port   int
	cmd    *exec.Cmd
	waitCh chan struct{} // closed when the process has exited
}

// NewManager creates a stopped Manager for the given fava binary and main
// ledger file.
func NewManager(command, mainPath string) *Manager {
	return &Manager{
		command:  command,
		mainPath: mainPath,
		state:    StateStopped,
	}
}

// Start launches fava on the given port. Starting an already running
// manager is a no-op.
func (m *Manager) Start(port int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateRunning, StateStarting:
		return nil
	case StateStopping:
		return errors.New("fava is stopping, try again")
	}

	m.state = StateStarting
	cmd := exec.Command(m.command, m.mainPath, "-p", strconv.Itoa(port), "--host", "127.0.0.1")
	if err := cmd.Start(); err != nil {
		m.state = StateStopped
		return fmt.Errorf("failed to start fava: %w", err)
	}

	waitCh := make(chan struct{})
	go func() {
		err := cmd.Wait()
		close(waitCh)

		m.mu.Lock()
		if m.waitCh == waitCh {
			if m.state != StateStopping {
				slog.Warn("fava exited unexpectedly", "error", err)
			}
			m.state = StateStopped
			m.cmd = nil
			m.waitCh = nil
		}
		m.mu.Unlock()
	}()

	m.cmd = cmd
	m.waitCh = waitCh
	m.port = port
	m.state = StateRunning
	slog.Info("fava started", "port", port, "pid", cmd.Process.Pid)
	return nil
}

// Stop terminates the process, escalating to SIGKILL after a timeout.
// Stopping a stopped manager is a no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if m.state != StateRunning {
		m.mu.Unlock()
		return nil
	}
	m.state = StateStopping
	cmd := m.cmd
	waitCh := m.waitCh
	m.mu.Unlock()

	if err := cmd.Process.Signal(sigTerm); err != nil {
		// Process may already be gone; the wait goroutine settles the state.
		slog.Debug("failed to signal fava", "error", err)
	}

	select {
	case <-waitCh:
	case <-time.After(stopTimeout):
		slog.Warn("fava did not stop in time, killing")
		_ = cmd.Process.Kill()
		<-waitCh
	}

	slog.Info("fava stopped")
	return nil
}

// Status returns the current state and, when running, the local URL.
func (m *Manager) Status() (State, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRunning {
		return m.state, ""
	}
	return m.state, fmt.Sprintf("http://127.0.0.1:%d", m.port)
}

// Running reports whether the process is up.
func (m *Manager) Running() bool {
	state, _ := m.Status()
	return state == StateRunning
}
