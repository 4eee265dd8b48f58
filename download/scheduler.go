package download

import (
	"context"
	"fmt"
	"time"

	"github.com/lepinkainen/workshopdl/progress"
	"github.com/lepinkainen/workshopdl/workshop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Outcome is the final result for one item
type Outcome struct {
	WorkshopID string
	Err        error // nil when the item completed
}

// Summary aggregates a scheduler run
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []Outcome // in input order
	Elapsed   time.Duration
}

// Scheduler runs downloads with bounded parallelism
type Scheduler struct {
	downloader Downloader
	ledger     *progress.Ledger
	limit      int
	logger     *zap.Logger
}

// NewScheduler creates a scheduler running at most limit downloads at a time
func NewScheduler(downloader Downloader, ledger *progress.Ledger, limit int, logger *zap.Logger) *Scheduler {
	if limit < 1 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		downloader: downloader,
		ledger:     ledger,
		limit:      limit,
		logger:     logger,
	}
}

// Limit returns the parallelism bound
func (s *Scheduler) Limit() int {
	return s.limit
}

// Run downloads every task and waits for all of them. Individual failures
// never stop the batch; every task ends in a terminal ledger state and is
// counted exactly once.
func (s *Scheduler) Run(ctx context.Context, tasks []workshop.Task) Summary {
	start := time.Now()
	outcomes := make([]Outcome, len(tasks))

	var g errgroup.Group
	g.SetLimit(s.limit)

	for i, task := range tasks {
		g.Go(func() error {
			outcomes[i] = s.runOne(ctx, task)
			// Never fail the group, siblings must keep running
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(tasks), Outcomes: outcomes, Elapsed: time.Since(start)}
	for _, o := range outcomes {
		if o.Err == nil {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("batch finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.Elapsed))

	return summary
}

// runOne runs a single task and reconciles the result with the ledger
func (s *Scheduler) runOne(ctx context.Context, task workshop.Task) (out Outcome) {
	id := task.WorkshopID
	out.WorkshopID = id

	defer func() {
		if r := recover(); r != nil {
			out.Err = newError(ErrorUnknown, id, fmt.Sprintf("task panic: %v", r), nil)
		}
		out.Err = s.reconcile(id, out.Err)
	}()

	out.Err = s.downloader.Download(ctx, task)
	return out
}

// reconcile makes sure the ledger holds a terminal record for id and that the
// outcome agrees with it. Success is decided by the ledger, not the return value.
func (s *Scheduler) reconcile(id string, err error) error {
	rec, ok := s.ledger.Get(id)
	if !ok {
		return newError(ErrorLedger, id, "item missing from ledger", err)
	}

	switch {
	case rec.Status == progress.StatusCompleted:
		if err != nil {
			s.logger.Warn("completed item reported an error", zap.String("workshop_id", id), zap.Error(err))
		}
		return nil
	case rec.Status == progress.StatusError:
		if err == nil {
			return newError(ErrorUnknown, id, rec.Detail, nil)
		}
		return err
	}

	if err == nil {
		err = newError(ErrorUnknown, id, fmt.Sprintf("download ended in state %s", rec.Status), nil)
	}
	de := asDownloadError(id, err)
	if uerr := s.ledger.Update(id, func(r progress.Record) progress.Record {
		r.Status = progress.StatusError
		r.Detail = de.Error()
		return r
	}); uerr != nil {
		s.logger.Error("failed to record task error", zap.String("workshop_id", id), zap.Error(uerr))
	}
	return de
}
