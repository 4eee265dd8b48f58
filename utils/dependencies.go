package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
)

// ErrSteamCMDNotFound is returned when the steamcmd executable is missing
var ErrSteamCMDNotFound = errors.New("steamcmd not found")

// ValidateSteamCMD checks that the steamcmd executable exists at path
func ValidateSteamCMD(path string) error {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w at %s. %s", ErrSteamCMDNotFound, path, getInstallationInstructions())
	}
	if err != nil {
		return fmt.Errorf("cannot access steamcmd at %s: %w", path, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory. %s", ErrSteamCMDNotFound, path, getInstallationInstructions())
	}
	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "windows":
		return "Download steamcmd.zip from https://developer.valvesoftware.com/wiki/SteamCMD and extract it to the steam folder"
	case "linux":
		return "Install with: apt-get install steamcmd (Ubuntu/Debian), or download steamcmd_linux.tar.gz from https://developer.valvesoftware.com/wiki/SteamCMD into the steam folder"
	case "darwin":
		return "Download steamcmd_osx.tar.gz from https://developer.valvesoftware.com/wiki/SteamCMD and extract it to the steam folder"
	default:
		return "Download SteamCMD from https://developer.valvesoftware.com/wiki/SteamCMD"
	}
}
