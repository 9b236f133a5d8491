package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"helloworld/contract"
	"helloworld/errors"
)

const DefaultRestartDelay = 200 * time.Millisecond

// Supervisor runs each worker in its own goroutine and restarts it after a
// panic or an error, until the context is canceled. A worker returning nil
// is done and is not restarted.
type Supervisor struct {
	Cancel       context.CancelFunc
	stopped      context.Context
	wg           *sync.WaitGroup
	log          *slog.Logger
	restartDelay time.Duration
	workers      []contract.Worker
}

func NewSupervisor(log *slog.Logger, restartDelay time.Duration) *Supervisor {
	if restartDelay <= 0 {
		restartDelay = DefaultRestartDelay
	}
	stopped, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		Cancel:       cancel,
		stopped:      stopped,
		wg:           &sync.WaitGroup{},
		log:          log,
		restartDelay: restartDelay,
	}
}

// Run starts every added worker and blocks until all of them returned.
// Canceling the parent ctx or calling Stop, before or during Run, cancels
// the workers.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	unwatch := context.AfterFunc(s.stopped, cancel)
	defer unwatch()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision. A panic inside Run is recovered
// and the worker is restarted after the restart delay.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.restartDelay):
			}
		}
	}()
}

// Stop cancels the workers. Run returns once they all exited.
func (s *Supervisor) Stop() {
	s.Cancel()
}
