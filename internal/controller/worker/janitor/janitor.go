package janitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/usecase"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
)

type Janitor struct {
	maintenance usecase.MaintenanceUseCase
	logger      logger.Interface

	interval   time.Duration
	staleAfter time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(
	maintenance usecase.MaintenanceUseCase,
	l logger.Interface,
	interval time.Duration,
	staleAfter time.Duration,
) *Janitor {
	return &Janitor{
		maintenance: maintenance,
		logger:      l,
		interval:    interval,
		staleAfter:  staleAfter,
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	if !j.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Janitor - Start - worker already started")
	}

	j.ctx, j.cancel = context.WithCancel(ctx)

	j.worker(j.interval, j.sweep)

	return nil
}

func (j *Janitor) sweep() {
	n, err := j.maintenance.SweepStale(j.ctx, j.staleAfter)
	if err != nil {
		j.logger.Error(err, "Janitor - sweep - j.maintenance.SweepStale")
	}

	if n > 0 {
		j.logger.Info("removed stale temp files, count = %d", n)
	}
}

func (j *Janitor) worker(interval time.Duration, task func()) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-j.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	if !j.started.Load() {
		return nil
	}

	if j.cancel != nil {
		j.cancel()
	}

	done := make(chan struct{})

	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("Janitor - Shutdown: %w", ctx.Err())
	}
}
