package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/hammad535/ideogramfire/internal/platform"
	"github.com/hammad535/ideogramfire/models"
	"github.com/hammad535/ideogramfire/tasks"
)

// Runs stuck in "processing" longer than this get re-queued. Generation of
// a long script is minutes, not hours.
const stuckRunAge = 15 * time.Minute

// Completed and failed runs older than this get purged.
const runRetention = 30 * 24 * time.Hour

func main() {
	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		requeueStuckRuns(ctx, db, rdb)
	}); err != nil {
		log.Fatalf("Error scheduling stuck-run sweep: %v", err)
	}

	if _, err := c.AddFunc("@daily", func() {
		purgeOldRuns(db)
	}); err != nil {
		log.Fatalf("Error scheduling run purge: %v", err)
	}

	c.Start()
	defer c.Stop()

	log.Println("Scheduler started")
	// Keep the main thread alive
	select {}
}

// requeueStuckRuns pushes runs back onto the queue when a worker died
// mid-run. Safe to run on one instance only; two schedulers would
// double-queue.
func requeueStuckRuns(ctx context.Context, db *gorm.DB, rdb *redis.Client) {
	cutoff := time.Now().Add(-stuckRunAge)

	var stuck []models.GenerationRun
	if err := db.Where("status = ? AND started_at < ?", models.RunStatusProcessing, cutoff).Find(&stuck).Error; err != nil {
		log.Printf("Error querying stuck runs: %v", err)
		return
	}

	for _, run := range stuck {
		log.Printf("Re-queuing stuck run %d (started %v)", run.ID, run.StartedAt)

		if err := db.Model(&run).Update("status", models.RunStatusPending).Error; err != nil {
			log.Printf("Error resetting run %d: %v", run.ID, err)
			continue
		}

		payload, err := tasks.Marshal(tasks.RunTaskPayload{RunID: run.ID})
		if err != nil {
			log.Printf("Error marshalling task for run %d: %v", run.ID, err)
			continue
		}
		if err := rdb.LPush(ctx, tasks.QueueGenerationRun, payload).Err(); err != nil {
			log.Printf("Error pushing run %d to queue: %v", run.ID, err)
		}
	}
}

// purgeOldRuns deletes finished runs past the retention window.
func purgeOldRuns(db *gorm.DB) {
	cutoff := time.Now().Add(-runRetention)

	result := db.Where("status IN ? AND updated_at < ?",
		[]string{models.RunStatusComplete, models.RunStatusFailed}, cutoff).
		Delete(&models.GenerationRun{})
	if result.Error != nil {
		log.Printf("Error purging old runs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d old generation runs", result.RowsAffected)
	}

	result = db.Where("status IN ? AND updated_at < ?",
		[]string{models.RunStatusComplete, models.RunStatusFailed}, cutoff).
		Delete(&models.ImageBatch{})
	if result.Error != nil {
		log.Printf("Error purging old image batches: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d old image batches", result.RowsAffected)
	}
}
