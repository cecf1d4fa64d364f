package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hammad535/ideogramfire/models"
	"github.com/hammad535/ideogramfire/processing"
	"github.com/hammad535/ideogramfire/tasks"
)

// HandleGenerationRun processes tasks from QueueGenerationRun.
func (p *Processor) HandleGenerationRun(ctx context.Context, payload string) error {
	var task tasks.RunTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	log.Printf("Processing generation run %d", task.RunID)
	var run models.GenerationRun
	if err := p.DB.First(&run, task.RunID).Error; err != nil {
		return err
	}

	now := time.Now()
	p.DB.Model(&run).Updates(map[string]interface{}{
		"status":     models.RunStatusProcessing,
		"started_at": &now,
	})

	result, err := p.executeRun(ctx, &run)
	if err != nil {
		p.failRun(&run, err)
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		p.failRun(&run, err)
		return err
	}

	if err := p.DB.Model(&run).Updates(map[string]interface{}{
		"status":     models.RunStatusComplete,
		"result":     string(resultJSON),
		"last_error": "",
	}).Error; err != nil {
		return err
	}

	log.Printf("Generation run %d complete", run.ID)
	return nil
}

// executeRun dispatches a run to the generator entry point for its mode.
func (p *Processor) executeRun(ctx context.Context, run *models.GenerationRun) (interface{}, error) {
	switch run.Mode {
	case models.RunModeContinuation:
		var params processing.ContinuationParams
		if err := json.Unmarshal([]byte(run.Params), &params); err != nil {
			return nil, err
		}
		return p.Generator.ContinuationSegment(ctx, &params)

	case models.RunModeContinuity:
		var params processing.GenerationParams
		if err := json.Unmarshal([]byte(run.Params), &params); err != nil {
			return nil, err
		}
		return p.Generator.GenerateWithContinuity(ctx, &params)

	default:
		var params processing.GenerationParams
		if err := json.Unmarshal([]byte(run.Params), &params); err != nil {
			return nil, err
		}
		return p.Generator.Generate(ctx, &params)
	}
}

func (p *Processor) failRun(run *models.GenerationRun, err error) {
	log.Printf("Generation run %d failed: %v", run.ID, err)
	p.DB.Model(run).Updates(map[string]interface{}{
		"status":     models.RunStatusFailed,
		"last_error": err.Error(),
	})
}

// HandleImageBatch processes tasks from QueueImageBatch.
func (p *Processor) HandleImageBatch(ctx context.Context, payload string) error {
	var task tasks.ImageBatchTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	log.Printf("Processing image batch %d", task.BatchID)
	var batch models.ImageBatch
	if err := p.DB.First(&batch, task.BatchID).Error; err != nil {
		return err
	}

	p.DB.Model(&batch).Update("status", models.RunStatusProcessing)

	result, err := p.Batcher.Run(ctx, batch.ImageDataURL, batch.UserPrompt, batch.CreativeMode)
	if err != nil {
		log.Printf("Image batch %d failed: %v", batch.ID, err)
		p.DB.Model(&batch).Updates(map[string]interface{}{
			"status":     models.RunStatusFailed,
			"last_error": err.Error(),
		})
		// Validation failures are terminal, no point re-queuing.
		var verr *processing.ValidationError
		if errors.As(err, &verr) {
			return nil
		}
		return err
	}

	promptsJSON, err := json.Marshal(result.Prompts)
	if err != nil {
		return err
	}
	urlsJSON, err := json.Marshal(result.ImageURLs)
	if err != nil {
		return err
	}

	if err := p.DB.Model(&batch).Updates(map[string]interface{}{
		"status":     models.RunStatusComplete,
		"prompts":    string(promptsJSON),
		"image_urls": string(urlsJSON),
		"last_error": "",
	}).Error; err != nil {
		return err
	}

	log.Printf("Image batch %d complete: %d prompts rendered", batch.ID, len(result.Prompts))
	return nil
}
