//go:build darwin

package backend

import "golang.org/x/sys/unix"

type sysctlTable struct{}

func newProcessTable() ProcessTable {
	return sysctlTable{}
}

// Processes reads kern.proc.all. p_comm holds the executable name,
// truncated by the kernel to MAXCOMLEN.
func (sysctlTable) Processes() ([]ProcInfo, error) {
	kps, err := unix.SysctlKinfoProcSlice("kern.proc.all")
	if err != nil {
		return nil, err
	}
	procs := make([]ProcInfo, 0, len(kps))
	for i := range kps {
		kp := &kps[i]
		procs = append(procs, ProcInfo{
			PID:  int(kp.Proc.P_pid),
			PPID: int(kp.Eproc.Ppid),
			Name: unix.ByteSliceToString(kp.Proc.P_comm[:]),
		})
	}
	return procs, nil
}
