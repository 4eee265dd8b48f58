package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lepinkainen/workshopdl/cmd"
	"github.com/lepinkainen/workshopdl/config"
	"github.com/lepinkainen/workshopdl/logging"
	"github.com/lepinkainen/workshopdl/types"
)

var Version = "dev"

type CLI struct {
	LogFile  string           `help:"Write logs to this file (empty disables logging)" default:"workshopdl.log" env:"WORKSHOPDL_LOG_FILE"`
	LogLevel string           `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"WORKSHOPDL_LOG_LEVEL"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Download cmd.DownloadCmd `cmd:"" default:"withargs" help:"Download every workshop item listed in the mods file"`
	Check    cmd.CheckCmd    `cmd:"" help:"Validate steamcmd and the mods file without downloading"`
}

func main() {
	if err := config.LoadEnv(config.DefaultEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &types.AppContext{Version: Version}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("workshopdl"),
		kong.Description("Batch downloader for Steam Workshop items using steamcmd"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
		kong.Bind(appCtx),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	logger, err := logging.New(logging.Config{Path: cli.LogFile, Level: cli.LogLevel})
	kctx.FatalIfErrorf(err)

	appCtx.RunID = uuid.NewString()
	appCtx.Logger = logger.With(zap.String("run_id", appCtx.RunID))
	defer func() { _ = appCtx.Logger.Sync() }()

	appCtx.Logger.Info("workshopdl starting", zap.String("version", Version), zap.String("command", kctx.Command()))

	err = kctx.Run()
	if err != nil {
		appCtx.Logger.Error("command failed", zap.Error(err))
		_ = appCtx.Logger.Sync()
	}
	kctx.FatalIfErrorf(err)
}
