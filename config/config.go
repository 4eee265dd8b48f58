package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the CLI reads
const EnvPrefix = "WORKSHOPDL_"

// DefaultEnvFile is loaded from the working directory when present
const DefaultEnvFile = ".env"

// LoadEnv loads the given .env files into the process environment. Missing
// files are skipped; variables already set in the environment win.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// DefaultSteamCMDName returns the steamcmd executable name for this platform
func DefaultSteamCMDName() string {
	if runtime.GOOS == "windows" {
		return "steamcmd.exe"
	}
	return "steamcmd.sh"
}

// Paths holds every filesystem location a run touches
type Paths struct {
	SteamDir string // forced install dir for steamcmd, also the staging area
	SteamCMD string // steamcmd executable
	ModsFile string // input list of URLs
	Target   string // where finished items are copied
}

// Resolve fills in the steamcmd default and makes every path absolute
func (p Paths) Resolve() (Paths, error) {
	if p.SteamDir == "" {
		return Paths{}, errors.New("steam directory cannot be empty")
	}
	if p.ModsFile == "" {
		return Paths{}, errors.New("mods file cannot be empty")
	}
	if p.Target == "" {
		return Paths{}, errors.New("target directory cannot be empty")
	}
	if p.SteamCMD == "" {
		p.SteamCMD = filepath.Join(p.SteamDir, DefaultSteamCMDName())
	}

	var err error
	for _, field := range []*string{&p.SteamDir, &p.SteamCMD, &p.ModsFile, &p.Target} {
		if *field, err = filepath.Abs(*field); err != nil {
			return Paths{}, fmt.Errorf("failed to resolve path: %w", err)
		}
	}
	return p, nil
}
