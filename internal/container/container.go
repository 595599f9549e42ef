package container

import (
	"fmt"
	"net/http"

	"github.com/anime-shed/omr-inspector-go/internal/config"
	"github.com/anime-shed/omr-inspector-go/internal/factory"
	"github.com/anime-shed/omr-inspector-go/internal/logger"
	"github.com/anime-shed/omr-inspector-go/internal/observer"
	"github.com/anime-shed/omr-inspector-go/internal/repository"
	"github.com/anime-shed/omr-inspector-go/internal/service"
	"github.com/anime-shed/omr-inspector-go/internal/storage"
	"github.com/anime-shed/omr-inspector-go/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config         *config.Config
	configRepo     repository.GradingConfigRepository
	artifactStore  storage.ArtifactStore
	publisher      *observer.EventPublisher
	metrics        *observer.MetricsObserver
	gradingService service.GradingService
	handler        http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	components := factory.NewComponentFactory(cfg)

	// Build dependency graph
	configRepo := repository.NewFileConfigRepository(cfg.TemplatePath, cfg.AnswerKeyPath)
	artifactStore, err := components.StorageFactory.CreateStore(factory.StorageType(cfg.StorageBackend))
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	gradingService := service.NewGradingService(
		components.PipelineFactory.CreatePipeline(),
		configRepo,
		artifactStore,
		publisher,
		cfg.ArtifactFormat,
	)
	handler := transport.NewHandler(gradingService, metrics, cfg)

	return &Container{
		config:         cfg,
		configRepo:     configRepo,
		artifactStore:  artifactStore,
		publisher:      publisher,
		metrics:        metrics,
		gradingService: gradingService,
		handler:        handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// GradingService returns the grading service
func (c *Container) GradingService() service.GradingService {
	return c.gradingService
}

// Metrics returns the grading metrics observer
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}

// Close waits for in-flight event notifications
func (c *Container) Close() {
	c.publisher.Wait()
}
