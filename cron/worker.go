package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"tripflow/cache"
	"tripflow/config"
)

const TypeCacheSweep = "cache:sweep"

// InitCacheSweepWorker runs the async worker that periodically removes
// expired response-cache records.
func InitCacheSweepWorker(responseCache *cache.ResponseCache) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCacheSweep, handleCacheSweepTask(responseCache))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeCacheSweep, nil)); err != nil {
		log.Printf("[CacheSweepWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[CacheSweepWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic.
	go func() {
		log.Println("[CacheSweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CacheSweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[CacheSweepWorker] max retry attempts reached, giving up")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCacheSweepTask(responseCache *cache.ResponseCache) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		removed := responseCache.Sweep(ctx)
		log.Printf("[CacheSweepHandler] sweep complete, removed %d expired records", removed)
		return nil
	}
}
