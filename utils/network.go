package utils

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// networkFSTypes are filesystem types served over the network
var networkFSTypes = map[string]bool{
	"nfs":        true,
	"nfs4":       true,
	"cifs":       true,
	"smbfs":      true,
	"smb2":       true,
	"afpfs":      true,
	"webdav":     true,
	"davfs":      true,
	"fuse.sshfs": true,
	"9p":         true,
}

// IsNetworkPath reports whether path lives on a network-mounted filesystem.
// Lookup failures are treated as local.
func IsNetworkPath(path string) bool {
	// Windows UNC paths, checked before converting to absolute path
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, `\\`) {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	partitions, err := disk.Partitions(true)
	if err != nil {
		return false
	}

	part, ok := mountFor(partitions, absPath)
	return ok && isNetworkFSType(part.Fstype)
}

// mountFor returns the partition with the longest mountpoint containing path
func mountFor(partitions []disk.PartitionStat, path string) (disk.PartitionStat, bool) {
	var best disk.PartitionStat
	found := false
	for _, p := range partitions {
		if !underMount(path, p.Mountpoint) {
			continue
		}
		if !found || len(p.Mountpoint) > len(best.Mountpoint) {
			best = p
			found = true
		}
	}
	return best, found
}

func underMount(path, mountpoint string) bool {
	if mountpoint == "" {
		return false
	}
	rel, err := filepath.Rel(mountpoint, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isNetworkFSType(fstype string) bool {
	return networkFSTypes[strings.ToLower(fstype)]
}
