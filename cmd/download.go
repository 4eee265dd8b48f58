package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/lepinkainen/workshopdl/config"
	"github.com/lepinkainen/workshopdl/download"
	"github.com/lepinkainen/workshopdl/progress"
	"github.com/lepinkainen/workshopdl/types"
	"github.com/lepinkainen/workshopdl/ui"
	"github.com/lepinkainen/workshopdl/utils"
	"github.com/lepinkainen/workshopdl/workshop"
)

// PathFlags are the filesystem locations shared by every command
type PathFlags struct {
	ModsFile string `short:"f" help:"File with the store page URL on line 1 and one workshop item URL per line" default:"mods.txt" env:"WORKSHOPDL_MODS_FILE"`
	SteamDir string `help:"Folder holding steamcmd, also used as its install and staging directory" default:"steam" env:"WORKSHOPDL_STEAM_DIR"`
	SteamCMD string `name:"steamcmd" help:"Path to the steamcmd executable (default: steamcmd inside --steam-dir)" env:"WORKSHOPDL_STEAMCMD"`
	Target   string `short:"t" help:"Folder finished items are copied to" default:"mods" env:"WORKSHOPDL_TARGET"`
}

func (f PathFlags) resolve() (config.Paths, error) {
	paths, err := config.Paths{
		SteamDir: f.SteamDir,
		SteamCMD: f.SteamCMD,
		ModsFile: f.ModsFile,
		Target:   f.Target,
	}.Resolve()
	if err != nil {
		return config.Paths{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return paths, nil
}

// load resolves paths, checks for steamcmd and parses the mods file
func (f PathFlags) load(out io.Writer) (config.Paths, *workshop.ModList, error) {
	paths, err := f.resolve()
	if err != nil {
		return config.Paths{}, nil, err
	}
	if err := utils.ValidateSteamCMD(paths.SteamCMD); err != nil {
		return config.Paths{}, nil, err
	}

	list, err := workshop.ReadModsFile(paths.ModsFile)
	if err != nil {
		return config.Paths{}, nil, fmt.Errorf("failed to read mods file: %w", err)
	}
	if len(list.Skipped) > 0 {
		fmt.Fprintln(out, ui.WarningStyle.Render(fmt.Sprintf("⚠ %d invalid URLs found. These URLs will be skipped.", len(list.Skipped))))
	}
	if list.Duplicates > 0 {
		fmt.Fprintln(out, ui.WarningStyle.Render(fmt.Sprintf("⚠ %d duplicate workshop ids ignored.", list.Duplicates)))
	}
	return paths, list, nil
}

type DownloadCmd struct {
	PathFlags `embed:""`

	Workers int    `short:"w" help:"Number of parallel downloads (0 picks from system memory and CPU count)" default:"0" env:"WORKSHOPDL_WORKERS"`
	Display string `help:"Progress display" enum:"auto,tui,screen,plain" default:"auto" env:"WORKSHOPDL_DISPLAY"`
}

// runEnv carries the pieces of a run that tests replace
type runEnv struct {
	out        io.Writer
	isTerminal bool
	runner     download.Runner
}

func (cmd *DownloadCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	return cmd.execute(ctx, appCtx, runEnv{
		out:        os.Stdout,
		isTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		runner:     download.ExecRunner{},
	})
}

func (cmd *DownloadCmd) execute(ctx context.Context, appCtx *types.AppContext, env runEnv) error {
	logger := appCtx.LoggerOrNop()
	out := env.out

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Steam Workshop Downloader %s", appCtx.VersionOrDefault())))

	paths, list, err := cmd.load(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, ui.SuccessStyle.Render("✓ App ID: "+list.AppID))
	fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("✓ Total number of items: %d", len(list.WorkshopIDs))))

	limit := cmd.concurrency(paths, out, logger)
	fmt.Fprintln(out, ui.InfoStyle.Render(fmt.Sprintf("ℹ Using %d parallel downloads.", limit)))

	if err := os.MkdirAll(paths.Target, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	tasks := workshop.BuildTasks(list, paths.SteamCMD, paths.SteamDir, paths.Target)
	logger.Info("starting batch",
		zap.String("app_id", list.AppID),
		zap.Int("items", len(tasks)),
		zap.Int("concurrency", limit),
		zap.String("steamcmd", paths.SteamCMD),
		zap.String("target", paths.Target))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	display, err := ui.NewDisplay(cmd.Display, out, env.isTerminal, len(tasks), appCtx.VersionOrDefault(), cancel)
	if err != nil {
		return err
	}
	ledger := progress.NewLedger(list.WorkshopIDs, display.Observe)
	if err := display.Start(); err != nil {
		return fmt.Errorf("failed to start display: %w", err)
	}
	display.Observe(ledger.Snapshot())

	worker := download.NewWorker(env.runner, download.SteamCMDClassifier, ledger, logger)
	summary := download.NewScheduler(worker, ledger, limit, logger).Run(runCtx, tasks)

	if err := display.Close(); err != nil {
		logger.Warn("display exited with error", zap.Error(err))
	}

	for _, o := range summary.Outcomes {
		if o.Err != nil {
			logger.Warn("item failed", zap.String("workshop_id", o.WorkshopID), zap.Error(o.Err))
		}
	}

	fmt.Fprint(out, "\n"+ui.Summary(ui.RunReport{
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Elapsed:   summary.Elapsed,
		TargetDir: paths.Target,
	}))
	return nil
}

// concurrency returns the --workers override or the system heuristic
func (cmd *DownloadCmd) concurrency(paths config.Paths, out io.Writer, logger *zap.Logger) int {
	if cmd.Workers > 0 {
		return cmd.Workers
	}

	// Parallel steamcmd runs thrash network shares
	for _, dir := range []string{paths.SteamDir, paths.Target} {
		if utils.IsNetworkPath(dir) {
			fmt.Fprintln(out, ui.WarningStyle.Render("⚠ Network drive detected, using 1 parallel download"))
			logger.Info("network drive detected", zap.String("path", dir))
			return 1
		}
	}

	limit, err := download.DefaultConcurrency()
	if err != nil {
		logger.Warn("memory probe failed, using lowest concurrency", zap.Error(err), zap.Int("concurrency", limit))
	}
	return limit
}
