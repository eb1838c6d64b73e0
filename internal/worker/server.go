package worker

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"appypay-service/internal/consumers"
)

type Worker struct {
	Processor *consumers.SyncProcessor
}

func NewWorker(processor *consumers.SyncProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandlePaymentSync(ctx context.Context, t *asynq.Task) error {
	w.Processor.ProcessPaymentSync()
	return nil
}

func (w *Worker) HandleMethodRefresh(ctx context.Context, t *asynq.Task) error {
	return w.Processor.ProcessMethodRefresh()
}

func (w *Worker) HandleTokenSweep(ctx context.Context, t *asynq.Task) error {
	return w.Processor.ProcessTokenSweep()
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.SyncProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// Sync tasks are idempotent upserts, a small pool is enough.
			Concurrency: 5,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypePaymentSync, worker.HandlePaymentSync)
	mux.HandleFunc(TypeMethodRefresh, worker.HandleMethodRefresh)
	mux.HandleFunc(TypeTokenSweep, worker.HandleTokenSweep)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
