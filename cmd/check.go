package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lepinkainen/workshopdl/types"
	"github.com/lepinkainen/workshopdl/ui"
)

// CheckCmd validates the setup without downloading anything
type CheckCmd struct {
	PathFlags `embed:""`
}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	return cmd.execute(appCtx, os.Stdout)
}

func (cmd *CheckCmd) execute(appCtx *types.AppContext, out io.Writer) error {
	paths, list, err := cmd.load(out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.SuccessStyle.Render("✓ steamcmd found at "+paths.SteamCMD))
	fmt.Fprintln(out, ui.SuccessStyle.Render("✓ App ID: "+list.AppID))
	fmt.Fprintln(out, ui.InfoStyle.Render(fmt.Sprintf("ℹ %d workshop items: %s", len(list.WorkshopIDs), strings.Join(list.WorkshopIDs, ", "))))
	fmt.Fprintln(out, ui.InfoStyle.Render(fmt.Sprintf("ℹ Skipped lines: %d, duplicates: %d", len(list.Skipped), list.Duplicates)))
	fmt.Fprintln(out, ui.InfoStyle.Render("ℹ Items would be copied to "+paths.Target))

	appCtx.LoggerOrNop().Info("check passed")
	return nil
}
