package container

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/anime-shed/omr-inspector-go/internal/config"
)

func TestNewContainer(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RequestTimeout:     time.Second,
		MaxRequestBodySize: 1024,
		TemplatePath:       filepath.Join(dir, "template.json"),
		AnswerKeyPath:      filepath.Join(dir, "answer_key.json"),
		OutputDir:          filepath.Join(dir, "outputs"),
		ArtifactFormat:     "png",
		StorageBackend:     config.StorageLocal,
	}

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Expected container to be built, got: %v", err)
	}
	defer c.Close()

	if c.Config() != cfg || c.GradingService() == nil || c.Metrics() == nil {
		t.Error("Expected every dependency to be wired")
	}

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected health status 200, got %d", w.Code)
	}
}

func TestNewContainer_Errors(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil config")
	}
	if _, err := NewContainer(&config.Config{StorageBackend: "ftp"}); err == nil {
		t.Error("Expected error for unknown storage backend")
	}
}
