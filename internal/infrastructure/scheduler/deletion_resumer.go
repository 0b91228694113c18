package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// resumer is the part of the deletion use case the scheduler drives.
type resumer interface {
	ResumeIncomplete(ctx context.Context, olderThan time.Duration) (int, error)
}

// DeletionResumer periodically resumes approval workflows that stopped
// between steps. Overlapping ticks are skipped, so only one pass runs at a time.
type DeletionResumer struct {
	cron       *cron.Cron
	deletions  resumer
	schedule   string
	staleAfter time.Duration
	logger     usecasecontract.IAppLogger
}

func NewDeletionResumer(deletions resumer, schedule string, staleAfter time.Duration, logger usecasecontract.IAppLogger) *DeletionResumer {
	cronLogger := cron.PrintfLogger(printfLogger{logger})
	return &DeletionResumer{
		cron:       cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		deletions:  deletions,
		schedule:   schedule,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// Start registers the job and starts the scheduler. ctx bounds every pass.
func (s *DeletionResumer) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Infof("deletion resumer started, schedule %q", s.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (s *DeletionResumer) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Infof("deletion resumer stopped")
}

// RunOnce resumes every stale workflow and returns how many it completed.
func (s *DeletionResumer) RunOnce(ctx context.Context) int {
	n, err := s.deletions.ResumeIncomplete(ctx, s.staleAfter)
	if err != nil {
		s.logger.Errorf("deletion resume pass failed after %d workflows: %v", n, err)
		return n
	}
	if n > 0 {
		s.logger.Infof("resumed %d deletion workflows", n)
	}
	return n
}

type printfLogger struct {
	logger usecasecontract.IAppLogger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Debugf(format, args...)
}
