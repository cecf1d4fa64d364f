package generation

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammad535/ideogramfire/processing"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/video-segments/generate-continuation", h.GenerateContinuation)
	r.POST("/video-segments/download", h.DownloadSegments)
	r.POST("/process/export/csv", h.ExportBatchCSV)
	r.POST("/process/export/pdf", h.ExportBatchPDF)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateContinuationRequiresVoiceProfile(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := postJSON(t, r, "/video-segments/generate-continuation", map[string]interface{}{
		"script":  "This continuation script is definitely longer than fifty characters total.",
		"product": "desk lamp",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "voice_profile")
}

func TestDownloadSegmentsRejectsEmptyResult(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := postJSON(t, r, "/video-segments/download", processing.GenerationResult{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadSegmentsStreamsZip(t *testing.T) {
	r := newTestRouter(&Handler{})

	result := processing.GenerationResult{
		Segments: make([]processing.Segment, 2),
		Metadata: processing.GenerationMetadata{TotalSegments: 2, EstimatedDuration: 16},
	}

	w := postJSON(t, r, "/video-segments/download", result)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "video_segments.zip")

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 3) // 2 segments + README
}

func TestExportBatchCSVStreamsRows(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := postJSON(t, r, "/process/export/csv", ExportBatchRequest{
		Prompts:   []string{"first prompt", "second prompt"},
		ImageURLs: [][]string{{"https://img.example/1.png"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "first prompt")
}

func TestExportBatchCSVRequiresPrompts(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := postJSON(t, r, "/process/export/csv", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportBatchPDFStreamsDocument(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := postJSON(t, r, "/process/export/pdf", ExportBatchRequest{
		Title:   "Batch export",
		Prompts: []string{"a prompt"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &processing.ValidationError{Field: "script", Reason: "too short"}, http.StatusBadRequest},
		{"upstream", &processing.UpstreamError{Op: "base descriptions", Err: assert.AnError}, http.StatusBadGateway},
		{"other", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
