package cleanup

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cleanup  *CleanupService
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
}

func NewScheduler(cleanup *CleanupService, schedule string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cleanup:  cleanup,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		log: log,
	}
}

// Start регистрирует задачу и запускает планировщик. Задачи выполняются с ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.log.Info("starting cleanup scheduler", zap.String("schedule", s.schedule))

	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.cleanup.FailStalePayments(ctx); err != nil {
			s.log.Error("stale payments cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweeper schedule %q: %w", s.schedule, err)
	}

	// Выполняем сразу при старте
	if err := s.RunOnceNow(ctx); err != nil {
		s.log.Error("initial cleanup failed", zap.Error(err))
	}

	s.cron.Start()
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач
func (s *Scheduler) Stop() {
	s.log.Info("stopping cleanup scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) RunOnceNow(ctx context.Context) error {
	return s.cleanup.RunFullCleanup(ctx)
}
