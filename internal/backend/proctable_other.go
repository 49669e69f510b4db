//go:build !darwin

package backend

type unsupportedTable struct{}

func newProcessTable() ProcessTable {
	return unsupportedTable{}
}

func (unsupportedTable) Processes() ([]ProcInfo, error) {
	return nil, ErrProcessTableUnsupported
}
