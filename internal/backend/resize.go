package backend

import (
	"time"

	"golang.org/x/sys/unix"
)

// Defaults for Corrector.
const (
	DefaultCorrectAttempts = 10
	DefaultCorrectInterval = 10 * time.Millisecond
)

// ProcInfo is one entry of the process table.
type ProcInfo struct {
	PID  int
	PPID int
	Name string
}

// ProcessTable lists running processes.
type ProcessTable interface {
	Processes() ([]ProcInfo, error)
}

// Corrector finds the editor started by a terminal and sends it SIGWINCH
// so it picks up the real window size.
type Corrector struct {
	Table    ProcessTable
	Attempts int
	Interval time.Duration

	// Sleep and Signal default to time.Sleep and unix.Kill.
	Sleep  func(time.Duration)
	Signal func(pid int) error
}

// NewCorrector returns a Corrector with the default budget.
func NewCorrector(table ProcessTable) *Corrector {
	return &Corrector{
		Table:    table,
		Attempts: DefaultCorrectAttempts,
		Interval: DefaultCorrectInterval,
		Sleep:    time.Sleep,
		Signal:   sendWinch,
	}
}

// Correct polls the process table for a process named editor whose parent
// is termPID and signals the first match. It gives up with
// ErrCorrectionTimeout after Attempts polls.
func (c *Corrector) Correct(termPID int, editor string) error {
	sleep := c.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	signal := c.Signal
	if signal == nil {
		signal = sendWinch
	}

	for i := 0; i < c.Attempts; i++ {
		if i > 0 {
			sleep(c.Interval)
		}
		procs, err := c.Table.Processes()
		if err != nil {
			continue
		}
		for _, p := range procs {
			if p.Name == editor && p.PPID == termPID {
				return signal(p.PID)
			}
		}
	}
	return ErrCorrectionTimeout
}

func sendWinch(pid int) error {
	return unix.Kill(pid, unix.SIGWINCH)
}
