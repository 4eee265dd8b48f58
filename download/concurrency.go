package download

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

const gib = 1024 * 1024 * 1024

// PreferredCap picks a parallelism cap from total system memory so that
// constrained machines are not flooded with steamcmd processes
func PreferredCap(totalMem uint64) int {
	switch {
	case totalMem >= 8*gib:
		return 6
	case totalMem >= 4*gib:
		return 4
	default:
		return 2
	}
}

// ConcurrencyLimit is the memory cap bounded by the number of CPUs
func ConcurrencyLimit(totalMem uint64, cpus int) int {
	return min(PreferredCap(totalMem), max(cpus, 1))
}

// DefaultConcurrency probes the machine for the concurrency limit. When memory
// cannot be read it falls back to the lowest cap and returns the probe error.
func DefaultConcurrency() (int, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return ConcurrencyLimit(0, runtime.NumCPU()), fmt.Errorf("failed to read system memory: %w", err)
	}
	return ConcurrencyLimit(vm.Total, runtime.NumCPU()), nil
}
