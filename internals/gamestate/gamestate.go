// Package gamestate checks if the game is running. Mods can not be replaced
// while the game has them open.
package gamestate

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessNames are the executable names of the game (lower case, without extension)
var ProcessNames = []string{"beamng.drive.x64", "beamng.drive", "beamng.x64"}

// Lister returns the names of all running processes
type Lister func(ctx context.Context) ([]string, error)

// SystemProcesses lists the processes of the system
func SystemProcesses(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		// processes might exit while we iterate or be inaccessible
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Detector finds a running game
type Detector struct {
	List Lister
}

// New returns a Detector for the system's processes
func New() *Detector {
	return &Detector{List: SystemProcesses}
}

// Running reports whether one of the game's processes is running
func (d *Detector) Running(ctx context.Context) (bool, error) {
	names, err := d.List(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if isGameProcess(name) {
			return true, nil
		}
	}
	return false, nil
}

func isGameProcess(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	for _, candidate := range ProcessNames {
		if name == candidate {
			return true
		}
	}
	return false
}
