package factory

import (
	"fmt"

	"github.com/anime-shed/omr-inspector-go/internal/config"
	"github.com/anime-shed/omr-inspector-go/internal/omr"
	"github.com/anime-shed/omr-inspector-go/internal/service"
	"github.com/anime-shed/omr-inspector-go/internal/storage"
)

// StorageType represents different artifact storage backends
type StorageType string

const (
	// LocalStorage writes artifacts under the output directory
	LocalStorage StorageType = config.StorageLocal
	// AzureStorage uploads artifacts to a blob container
	AzureStorage StorageType = config.StorageAzure
)

// StorageFactory creates artifact stores
type StorageFactory interface {
	CreateStore(storageType StorageType) (storage.ArtifactStore, error)
}

// PipelineFactory creates the image stages of the grading service
type PipelineFactory interface {
	CreatePipeline() service.Pipeline
}

type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a storage factory reading backend settings from cfg
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStore creates an artifact store for the given backend
func (f *storageFactory) CreateStore(storageType StorageType) (storage.ArtifactStore, error) {
	switch storageType {
	case LocalStorage:
		return storage.NewLocalArtifactStore(f.cfg.OutputDir)
	case AzureStorage:
		return storage.NewAzureArtifactStore(f.cfg.AzureAccount, f.cfg.AzureKey, f.cfg.AzureContainer)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

type pipelineFactory struct {
	opts omr.Options
}

// NewPipelineFactory creates a pipeline factory with the given stage options
func NewPipelineFactory(opts omr.Options) PipelineFactory {
	return &pipelineFactory{opts: opts}
}

// CreatePipeline builds the locate, rectify, evaluate and score stages
func (f *pipelineFactory) CreatePipeline() service.Pipeline {
	return service.NewPipeline(f.opts)
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory  StorageFactory
	PipelineFactory PipelineFactory
}

// NewComponentFactory creates a component factory for cfg with default stage options
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		StorageFactory:  NewStorageFactory(cfg),
		PipelineFactory: NewPipelineFactory(omr.DefaultOptions()),
	}
}
