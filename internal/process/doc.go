// Package process starts and tracks the terminal child process.
//
// A Process wraps an exec.Cmd with a unique ID, state tracking and a
// Done channel closed when the child exits:
//
//	proc, err := process.Start("kitty", cmd, false)
//	if err != nil {
//	    return err
//	}
//	<-proc.Done()
//	os.Exit(proc.ExitCode())
//
// A detached process runs in its own session with its standard streams
// on the null device, so it outlives the launching shell.
package process
