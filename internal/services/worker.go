package services

import (
	"context"
	"sync"
	"time"

	"github.com/Jdubz/resume-pipeline/internal/logger"
)

// LaunchWorker launches a goroutine that drives active generation requests
// through the step executor and recovers stale queue items. Each pass
// advances every active request by at most one step, so a request started by
// an interactive caller and then abandoned still runs to completion.
func LaunchWorker(ctx context.Context, wg *sync.WaitGroup, generation *Generation, queue *Queue) {
	defer wg.Done()
	const requestLimit = 10
	const backoff = time.Second

	logger.Info("Worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker received shutdown signal, stopping...")
			return
		default:
		}

		if recovered, err := queue.RecoverStale(ctx); err != nil {
			logger.Errorf("Worker error recovering stale queue items: %v", err)
		} else if recovered > 0 {
			logger.Infof("Worker recovered %d stale queue items", recovered)
		}

		requests, err := generation.ListActive(ctx, requestLimit)
		if err != nil {
			logger.Errorf("Worker error fetching generation requests: %v", err)
			time.Sleep(backoff)
			continue
		}

		if len(requests) == 0 {
			logger.Debug("Worker: no active generation requests")
			time.Sleep(backoff)
			continue
		}

		for i := range requests {
			exec, err := generation.ExecuteNextStep(ctx, requests[i].RequestID)
			if err != nil {
				logger.Errorf("Worker error executing step for request %s: %v", requests[i].RequestID, err)
				continue
			}
			logger.InfoWithFields("Worker advanced generation request", map[string]interface{}{
				"request_id": exec.RequestID,
				"status":     exec.Status.String(),
				"next_step":  exec.NextStep,
			})
		}

		time.Sleep(backoff)
	}
}
