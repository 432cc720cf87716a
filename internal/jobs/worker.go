package jobs

import (
	"log"

	"storefront/internal/config"

	"github.com/hibiken/asynq"
)

// Worker wraps the asynq server processing queued tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker builds an asynq server from the worker config and registers
// the task handlers.
func NewWorker(redisOpt asynq.RedisClientOpt, cfg *config.WorkerConfig, emailProc *EmailProcessor) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Queuing.Concurrency,
		Queues:      cfg.Queuing.QueuePriorities,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWelcomeEmail, emailProc.HandleWelcomeEmail)

	return &Worker{server: server, mux: mux}
}

// Start runs the worker in its own goroutine.
func (w *Worker) Start() {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			log.Printf("Worker stopped: %v", err)
		}
	}()
}

// Stop waits for in-flight tasks before shutting down.
func (w *Worker) Stop() {
	w.server.Shutdown()
}
