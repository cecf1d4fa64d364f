package models

import (
	"time"
)

// Generation run statuses, in pipeline order.
const (
	RunStatusPending    = "pending"
	RunStatusProcessing = "processing"
	RunStatusComplete   = "complete"
	RunStatusFailed     = "failed"
)

// Run modes map onto the generator entry points.
const (
	RunModeStandard     = "standard"
	RunModeContinuity   = "continuity"
	RunModeContinuation = "continuation"
)

// GenerationRun is one queued segment-generation job. Params and Result
// hold the request and response JSON verbatim so the worker and the API
// never need a second schema for them.
type GenerationRun struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Mode   string `gorm:"not null;default:'standard'" json:"mode"`

	Params string `gorm:"type:jsonb;not null" json:"params"`
	Result string `gorm:"type:jsonb" json:"result,omitempty"`

	Status    string `gorm:"not null;default:'pending';index" json:"status"`
	LastError string `gorm:"type:text" json:"last_error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

func (GenerationRun) TableName() string {
	return "generation_runs"
}

// ImageBatch is one marketing image-batch job: the prompt-generation call
// plus the per-prompt Ideogram renders. Prompts and ImageURLs are stored
// as JSON arrays.
type ImageBatch struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	UserPrompt   string `gorm:"type:text" json:"user_prompt"`
	CreativeMode string `gorm:"not null;default:'paid'" json:"creative_mode"`
	ImageDataURL string `gorm:"type:text" json:"-"`

	Prompts   string `gorm:"type:jsonb" json:"prompts,omitempty"`
	ImageURLs string `gorm:"type:jsonb" json:"image_urls,omitempty"`

	Status    string `gorm:"not null;default:'pending';index" json:"status"`
	LastError string `gorm:"type:text" json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ImageBatch) TableName() string {
	return "image_batches"
}
