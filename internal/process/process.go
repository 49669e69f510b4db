package process

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// State represents the state of a process.
type State int

const (
	// StateCreated indicates the process has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the process is currently running.
	StateRunning
	// StateExited indicates the process has exited normally or with an error.
	StateExited
	// StateKilled indicates the process was killed by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process is a child process with exit tracking. It is safe for
// concurrent use.
type Process struct {
	// ID identifies the process in logs.
	ID string

	// Name is a human-readable name for the process.
	Name string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Started is the time the process was started.
	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// New wraps cmd, which must not have been started.
func New(name string, cmd *exec.Cmd) *Process {
	p := &Process{
		ID:   uuid.New().String(),
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1) // -1 indicates not exited
	return p
}

// Start starts cmd and tracks it until it exits.
//
// Unless detach is set, unset standard streams are inherited from the
// current process. A detached child gets a new session.
func Start(name string, cmd *exec.Cmd, detach bool) (*Process, error) {
	if detach {
		if cmd.SysProcAttr == nil {
			cmd.SysProcAttr = &syscall.SysProcAttr{}
		}
		cmd.SysProcAttr.Setsid = true
	} else {
		if cmd.Stdin == nil {
			cmd.Stdin = os.Stdin
		}
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	}

	p := New(name, cmd)
	if err := p.start(); err != nil {
		return nil, err
	}
	log.Debug("Started process", "id", p.ID, "name", name, "pid", p.PID(), "detached", detach)
	return p, nil
}

// State returns the current process state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the process exit code.
// Returns -1 if the process has not exited.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns any error from waiting on the process.
// Returns nil if the process exited successfully or hasn't exited.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done returns a channel that is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process is currently running.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// PID returns the process ID, or -1 if not started.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Signal sends a signal to the process.
// Returns an error if the process is not running.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return ErrProcessNotStarted
	}
	return p.Cmd.Process.Signal(sig)
}

// Wait blocks until the process exits and returns its exit code.
func (p *Process) Wait() (int, error) {
	if p.State() == StateCreated {
		return -1, ErrProcessNotStarted
	}
	<-p.done
	return p.ExitCode(), p.ExitError()
}

// WaitTimeout waits up to d for the process to exit and reports whether
// it did.
func (p *Process) WaitTimeout(d time.Duration) bool {
	if p.State() == StateCreated {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-p.done:
		return true
	case <-timer.C:
		return false
	}
}

func (p *Process) start() error {
	if p.State() != StateCreated {
		return ErrProcessAlreadyStarted
	}

	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Name, err)
	}

	p.Started = time.Now()
	p.state.Store(int32(StateRunning))

	go p.waitLoop()

	return nil
}

// waitLoop waits for the process to exit and updates state.
func (p *Process) waitLoop() {
	p.waitOnce.Do(func() {
		err := p.Cmd.Wait()

		exitCode := 0
		state := StateExited

		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
				// A non-zero status is reported through ExitCode.
				err = nil
			} else {
				exitCode = -1
			}
		}

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()

		p.exitCode.Store(int32(exitCode))
		p.state.Store(int32(state))
		log.Debug("Process exited", "id", p.ID, "name", p.Name, "code", exitCode, "state", state)
		close(p.done)
	})
}
