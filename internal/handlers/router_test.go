package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/handlers"
	"github.com/textcanvas/backend/internal/services"
)

// newTestRouter wires the full API surface against a temp storage tree and
// an in-memory record store, mirroring the route table in cmd/api/main.go.
func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:                "test",
		APIUrl:             "http://localhost:8080",
		StoragePath:        t.TempDir(),
		MaxUploadSize:      10 * 1024 * 1024,
		MaxFilesPerRequest: 5,
		CleanupDefaultDays: 7,
	}

	blobs := services.NewBlobStore(cfg)
	blobs.EnsureDirectories()
	ingest := services.NewIngestService(blobs, cfg)
	designs := services.NewDesignService(services.NewMemoryDesignStore(), ingest, blobs)
	export := services.NewExportService(cfg)

	healthHandler := handlers.NewHealthHandler(blobs, cfg)
	uploadHandler := handlers.NewUploadHandler(ingest, cfg)
	designHandler := handlers.NewDesignHandler(designs, export, cfg)

	router := gin.New()
	router.Static("/storage", cfg.StoragePath)
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.POST("/upload/font", uploadHandler.UploadFont)
		api.POST("/upload/image", uploadHandler.UploadImage)
		api.POST("/designs", designHandler.CreateDesign)
		api.GET("/designs", designHandler.ListDesigns)
		api.GET("/designs/:id", designHandler.GetDesign)
		api.GET("/designs/:id/export.pdf", designHandler.ExportDesign)
		api.DELETE("/designs/:id", designHandler.DeleteDesign)
		api.DELETE("/cleanup", designHandler.Cleanup)
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
		})
	})

	return router, cfg
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return doRequest(t, router, method, path, body, "application/json")
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

// multipartBody builds a multipart form holding the given files under their
// field names.
func multipartBody(t *testing.T, files map[string][]fileSpec) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, specs := range files {
		for _, spec := range specs {
			fw, err := w.CreateFormFile(field, spec.name)
			require.NoError(t, err)
			_, err = fw.Write(spec.content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type fileSpec struct {
	name    string
	content []byte
}

func pngDataURL(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

func saveDesign(t *testing.T, router *gin.Engine, text string) uint64 {
	t.Helper()
	return saveDesignWithImage(t, router, text, []byte(text))
}

func saveDesignWithImage(t *testing.T, router *gin.Engine, text string, payload []byte) uint64 {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/designs", gin.H{
		"text":       text,
		"finalImage": pngDataURL(payload),
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	return uint64(body["designId"].(float64))
}

// encodedPNG returns a real PNG so PDF export can embed it.
func encodedPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}
