package main

import (
	"context"
	"log"

	"github.com/hammad535/ideogramfire/internal/platform"
	"github.com/hammad535/ideogramfire/processing"
	"github.com/hammad535/ideogramfire/tasks"
	"github.com/hammad535/ideogramfire/worker"
)

func main() {
	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	cfg, err := platform.LoadGenerationConfig()
	if err != nil {
		log.Fatalf("Worker cannot start: %v", err)
	}

	llm := processing.NewOpenAICompleter(cfg)
	gen := processing.NewGenerator(llm, processing.WithSanitizer(processing.NewDefaultSanitizer()))
	batcher := processing.NewImageBatcher(llm, processing.NewIdeogramClient(cfg))

	p := worker.NewProcessor(db, rdb, gen, batcher)
	p.Register(tasks.QueueGenerationRun, p.HandleGenerationRun)
	p.Register(tasks.QueueImageBatch, p.HandleImageBatch)

	log.Println("Worker started, waiting for queue tasks...")
	p.Listen(ctx, tasks.QueueGenerationRun, tasks.QueueImageBatch)
}
