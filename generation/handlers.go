package generation

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/hammad535/ideogramfire/export"
	"github.com/hammad535/ideogramfire/models"
	"github.com/hammad535/ideogramfire/processing"
	"github.com/hammad535/ideogramfire/tasks"
)

// maxUploadBytes caps product image uploads at 8 MB.
const maxUploadBytes = 8 << 20

type Handler struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Generator *processing.Generator
	Batcher   *processing.ImageBatcher
}

func NewHandler(db *gorm.DB, rdb *redis.Client, gen *processing.Generator, batcher *processing.ImageBatcher) *Handler {
	return &Handler{DB: db, Redis: rdb, Generator: gen, Batcher: batcher}
}

// respondError maps pipeline errors onto HTTP statuses: bad input is the
// caller's fault, upstream model failures are a gateway problem.
func respondError(c *gin.Context, err error) {
	var verr *processing.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	var uerr *processing.UpstreamError
	if errors.As(err, &uerr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": uerr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GenerateSegments runs the full pipeline synchronously. The json_format
// field selects standard or enhanced-continuity generation.
func (h *Handler) GenerateSegments(c *gin.Context) {
	var params processing.GenerationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		result *processing.GenerationResult
		err    error
	)
	if params.JSONFormat == "enhanced" {
		result, err = h.Generator.GenerateWithContinuity(c.Request.Context(), &params)
	} else {
		result, err = h.Generator.Generate(c.Request.Context(), &params)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateNewContinuity always runs the enhanced-continuity pipeline,
// including animal avatar support.
func (h *Handler) GenerateNewContinuity(c *gin.Context) {
	var params processing.GenerationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params.JSONFormat = "enhanced"

	result, err := h.Generator.GenerateWithContinuity(c.Request.Context(), &params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateContinuation appends a single segment to an existing run using
// its frozen voice profile.
func (h *Handler) GenerateContinuation(c *gin.Context) {
	var params processing.ContinuationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.VoiceProfile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voice_profile is required"})
		return
	}

	segment, err := h.Generator.ContinuationSegment(c.Request.Context(), &params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"segment": segment})
}

// DownloadSegments streams a posted generation result back as a ZIP of
// per-segment JSON files.
func (h *Handler) DownloadSegments(c *gin.Context) {
	var result processing.GenerationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(result.Segments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no segments to download"})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="video_segments.zip"`)
	if err := export.SegmentsZip(c.Writer, &result); err != nil {
		log.Printf("Error writing segments ZIP: %v", err)
	}
}

// ProcessImageBatch accepts a multipart product image plus prompt and runs
// the marketing batch synchronously: one prompt-generation call, then the
// Ideogram renders. The finished batch is persisted for later export.
func (h *Handler) ProcessImageBatch(c *gin.Context) {
	userID := c.GetUint("user_id")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 8MB limit"})
		return
	}

	imageData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(imageData))

	userPrompt := c.PostForm("prompt")
	creativeMode := c.DefaultPostForm("creative_mode", "paid")

	batch := models.ImageBatch{
		UserID:       userID,
		UserPrompt:   userPrompt,
		CreativeMode: creativeMode,
		ImageDataURL: dataURL,
		Status:       models.RunStatusProcessing,
	}
	if err := h.DB.Create(&batch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create batch"})
		return
	}

	result, err := h.Batcher.Run(c.Request.Context(), dataURL, userPrompt, creativeMode)
	if err != nil {
		h.DB.Model(&batch).Updates(map[string]interface{}{
			"status":     models.RunStatusFailed,
			"last_error": err.Error(),
		})
		respondError(c, err)
		return
	}

	promptsJSON, _ := json.Marshal(result.Prompts)
	urlsJSON, _ := json.Marshal(result.ImageURLs)
	h.DB.Model(&batch).Updates(map[string]interface{}{
		"status":     models.RunStatusComplete,
		"prompts":    string(promptsJSON),
		"image_urls": string(urlsJSON),
	})

	c.JSON(http.StatusOK, gin.H{
		"batch_id":   batch.ID,
		"prompts":    result.Prompts,
		"image_urls": result.ImageURLs,
	})
}

// ExportBatchRequest is the body for the CSV and PDF export endpoints.
type ExportBatchRequest struct {
	Title     string     `json:"title"`
	Prompts   []string   `json:"prompts" binding:"required"`
	ImageURLs [][]string `json:"image_urls"`
}

// ExportBatchCSV streams a posted image batch as CSV.
func (h *Handler) ExportBatchCSV(c *gin.Context) {
	var req ExportBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="image_prompts.csv"`)
	if err := export.PromptsCSV(c.Writer, req.Prompts, req.ImageURLs); err != nil {
		log.Printf("Error writing prompts CSV: %v", err)
	}
}

// ExportBatchPDF streams a posted image batch as a PDF prompt sheet.
func (h *Handler) ExportBatchPDF(c *gin.Context) {
	var req ExportBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "Image prompt sheet"
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="image_prompts.pdf"`)
	if err := export.PromptSheetPDF(c.Writer, req.Title, req.Prompts, req.ImageURLs); err != nil {
		log.Printf("Error writing prompt sheet PDF: %v", err)
	}
}

// CreateRunRequest is the body for queuing an async generation run.
type CreateRunRequest struct {
	Mode   string          `json:"mode"`
	Params json.RawMessage `json:"params" binding:"required"`
}

// CreateRun queues a generation run for the worker and returns the row.
func (h *Handler) CreateRun(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Mode {
	case "", models.RunModeStandard:
		req.Mode = models.RunModeStandard
	case models.RunModeContinuity, models.RunModeContinuation:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be standard, continuity or continuation"})
		return
	}

	run := models.GenerationRun{
		UserID: userID,
		Mode:   req.Mode,
		Params: string(req.Params),
		Status: models.RunStatusPending,
	}
	if err := h.DB.Create(&run).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create run"})
		return
	}

	payload, err := tasks.Marshal(tasks.RunTaskPayload{RunID: run.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue run"})
		return
	}
	if err := h.Redis.LPush(c.Request.Context(), tasks.QueueGenerationRun, payload).Err(); err != nil {
		log.Printf("Error pushing run %d to queue: %v", run.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue run"})
		return
	}

	c.JSON(http.StatusAccepted, run)
}

// GetRun returns a queued run's status and, once complete, its result.
func (h *Handler) GetRun(c *gin.Context) {
	runIDStr := c.Param("id")
	runID, err := strconv.ParseUint(runIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return
	}

	userID := c.GetUint("user_id")

	var run models.GenerationRun
	if err := h.DB.First(&run, "id = ? AND user_id = ?", runID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, run)
}
