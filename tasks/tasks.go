package tasks

import "encoding/json"

// Queue names. Each queue carries one payload type; workers BRPop across
// all of them.
const (
	// QueueGenerationRun carries queued segment-generation runs.
	QueueGenerationRun = "q_generation_run"

	// QueueImageBatch carries marketing image-batch jobs.
	QueueImageBatch = "q_image_batch"
)

// RunTaskPayload is the payload for QueueGenerationRun.
type RunTaskPayload struct {
	RunID uint `json:"run_id"`
}

// ImageBatchTaskPayload is the payload for QueueImageBatch.
type ImageBatchTaskPayload struct {
	BatchID uint `json:"batch_id"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
