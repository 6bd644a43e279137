// Package process inspects running Go processes to tell whether a recorded
// daemon PID still belongs to this application.
package process

import (
	"path/filepath"
	"strings"

	"github.com/google/gops/goprocess"
)

type Process struct {
	procList []Process

	PID  int
	Exec string
	Path string
	Name string
}

func NewProcess() *Process {
	return &Process{}
}

// ListProcesses snapshots the Go processes visible to the current user.
func (p *Process) ListProcesses() error {
	p.procList = p.procList[:0]

	for _, proc := range goprocess.FindAll() {
		p.procList = append(p.procList, Process{
			PID:  proc.PID,
			Exec: proc.Exec,
			Path: proc.Path,
			Name: strings.TrimSuffix(filepath.Base(proc.Exec), filepath.Ext(proc.Exec)),
		})
	}

	return nil
}

func (p *Process) IsProcessRunning(pid int) bool {
	for _, proc := range p.procList {
		if proc.PID == pid {
			return true
		}
	}

	return false
}

// ProcessExists reports whether pid is running and its executable name or
// path contains name (case-insensitive).
func (p *Process) ProcessExists(pid int, name string) bool {
	name = strings.ToLower(name)

	for _, proc := range p.procList {
		if proc.PID == pid {
			return strings.Contains(strings.ToLower(proc.Name), name) || strings.Contains(strings.ToLower(proc.Path), name)
		}
	}

	return false
}
