package download

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lepinkainen/workshopdl/progress"
	"github.com/lepinkainen/workshopdl/workshop"
	"go.uber.org/zap"
)

// Downloader drives a single task to a terminal ledger state
type Downloader interface {
	Download(ctx context.Context, task workshop.Task) error
}

// Worker downloads one workshop item with steamcmd and moves it into place
type Worker struct {
	runner   Runner
	classify Classifier
	ledger   *progress.Ledger
	logger   *zap.Logger
}

// NewWorker creates a worker. A nil classifier means SteamCMDClassifier.
func NewWorker(runner Runner, classify Classifier, ledger *progress.Ledger, logger *zap.Logger) *Worker {
	if classify == nil {
		classify = SteamCMDClassifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		runner:   runner,
		classify: classify,
		ledger:   ledger,
		logger:   logger,
	}
}

// Download runs the full per-item pipeline. Whatever happens, the item is left
// COMPLETED or ERROR in the ledger; the returned error is a *DownloadError.
func (w *Worker) Download(ctx context.Context, task workshop.Task) (err error) {
	id := task.WorkshopID
	log := w.logger.With(zap.String("workshop_id", id), zap.String("app_id", task.AppID))

	defer func() {
		if r := recover(); r != nil {
			err = newError(ErrorUnknown, id, fmt.Sprintf("worker panic: %v", r), nil)
		}
		if err != nil {
			de := asDownloadError(id, err)
			w.fail(id, de, log)
			err = de
		}
	}()

	if ctx.Err() != nil {
		return newError(ErrorCancelled, id, "cancelled before start", ctx.Err())
	}

	if err := w.ledger.Update(id, func(r progress.Record) progress.Record {
		r.Status = progress.StatusDownloading
		r.Progress = 0
		return r
	}); err != nil {
		return newError(ErrorLedger, id, "failed to mark download start", err)
	}
	log.Info("download started", zap.String("tool", task.ToolPath))

	result, runErr := w.runner.Run(ctx, task.ToolPath, task.Args, func(line string) {
		log.Debug("steamcmd", zap.String("line", line))
		kind := w.classify(line)
		if kind == LineNone {
			return
		}
		if err := w.ledger.Update(id, func(r progress.Record) progress.Record {
			r.Progress = advance(r.Progress, kind)
			return r
		}); err != nil {
			log.Warn("progress update rejected", zap.Error(err))
		}
	})
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			return newError(ErrorCancelled, id, "download cancelled", runErr)
		}
		return newError(ErrorToolFailure, id, "steamcmd failed", runErr)
	}
	if result.ExitCode != 0 {
		return exitError(id, result.ExitCode, result.Stderr)
	}

	if _, err := os.Stat(task.SourceDir); err != nil {
		return newError(ErrorContentMissing, id, "content missing after download", nil)
	}

	name := progress.SynthesizedName(id)
	if title, ok := workshop.ReadTitle(task.SourceDir); ok {
		name = title
	}

	if err := w.ledger.Update(id, func(r progress.Record) progress.Record {
		r.Status = progress.StatusMoving
		r.Progress = movingMark
		r.DisplayName = name
		return r
	}); err != nil {
		return newError(ErrorLedger, id, "failed to mark move start", err)
	}

	if err := workshop.ReplaceTree(task.SourceDir, task.DestDir); err != nil {
		return newError(ErrorFileSystem, id, "failed to move content", err)
	}

	if err := w.ledger.Update(id, func(r progress.Record) progress.Record {
		r.Status = progress.StatusCompleted
		r.Progress = 100
		r.DisplayName = name
		return r
	}); err != nil {
		return newError(ErrorLedger, id, "failed to mark completion", err)
	}

	log.Info("download completed", zap.String("name", name), zap.String("dest", task.DestDir))
	return nil
}

// fail records de in the ledger unless the item already reached a terminal state
func (w *Worker) fail(id string, de *DownloadError, log *zap.Logger) {
	log.Warn("download failed",
		zap.String("type", de.Type.String()),
		zap.Int("exit_code", de.ExitCode),
		zap.Error(de))

	err := w.ledger.Update(id, func(r progress.Record) progress.Record {
		if r.Status.IsTerminal() {
			return r
		}
		r.Status = progress.StatusError
		r.Detail = de.Error()
		return r
	})
	if err != nil && !errors.Is(err, progress.ErrInvalidTransition) {
		log.Error("failed to record error", zap.Error(err))
	}
}
