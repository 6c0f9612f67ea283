package scheduler

import (
	"context"
	"time"
)

// HoldSweeper удаляет временные брони с истекшим сроком
type HoldSweeper interface {
	SweepExpiredHolds(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает очистку истекших броней
type Scheduler struct {
	sweeper  HoldSweeper
	interval time.Duration
	logger   Logger
}

func New(sweeper HoldSweeper, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// Start блокируется до отмены ctx
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler: started, interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.sweeper.SweepExpiredHolds(ctx)
	if err != nil {
		s.logger.Error("Scheduler: failed to sweep expired holds: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Info("Scheduler: expired %d holds", expired)
	}
}
