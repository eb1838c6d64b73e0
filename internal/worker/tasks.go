package worker

import (
	"log"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypePaymentSync   = "payment-sync"
	TypeMethodRefresh = "method-refresh"
	TypeTokenSweep    = "token-sweep"
)

// Task Creators

func NewPaymentSyncTask() *asynq.Task {
	return asynq.NewTask(TypePaymentSync, nil)
}

func NewMethodRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeMethodRefresh, nil)
}

func NewTokenSweepTask() *asynq.Task {
	return asynq.NewTask(TypeTokenSweep, nil)
}

// Enqueuer submits background tasks over Redis. It satisfies the
// services.SyncEnqueuer contract.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisOpt asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpt)}
}

func (e *Enqueuer) EnqueuePaymentSync() error {
	info, err := e.client.Enqueue(NewPaymentSyncTask())
	if err != nil {
		return err
	}
	log.Printf("Enqueued payment sync task: id=%s queue=%s", info.ID, info.Queue)
	return nil
}

func (e *Enqueuer) EnqueueMethodRefresh() error {
	info, err := e.client.Enqueue(NewMethodRefreshTask())
	if err != nil {
		return err
	}
	log.Printf("Enqueued method refresh task: id=%s queue=%s", info.ID, info.Queue)
	return nil
}

func (e *Enqueuer) EnqueueTokenSweep() error {
	info, err := e.client.Enqueue(NewTokenSweepTask())
	if err != nil {
		return err
	}
	log.Printf("Enqueued token sweep task: id=%s queue=%s", info.ID, info.Queue)
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
