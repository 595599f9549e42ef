package service

import (
	"context"
	"errors"
	"image"
	"time"

	apperrors "github.com/anime-shed/omr-inspector-go/internal/errors"
	"github.com/anime-shed/omr-inspector-go/internal/observer"
	"github.com/anime-shed/omr-inspector-go/internal/omr"
	"github.com/anime-shed/omr-inspector-go/internal/repository"
	"github.com/anime-shed/omr-inspector-go/internal/storage"
	"github.com/anime-shed/omr-inspector-go/pkg/models"
)

// GradingService turns an uploaded photo into a graded sheet result
type GradingService interface {
	// GradeSheet runs decode, locate, rectify, evaluate and score, then
	// persists the rectified and overlay images under names derived from
	// sheetID. Every failure is an *apperrors.AppError.
	GradeSheet(ctx context.Context, data []byte, sheetID string) (*models.SheetResult, error)
}

// Pipeline groups the image stages used by the service
type Pipeline struct {
	Locator   omr.SheetLocator
	Rectifier omr.PerspectiveRectifier
	Evaluator omr.BubbleEvaluator
	Scorer    omr.ScoreCalculator
}

// NewPipeline builds the default stages from opts
func NewPipeline(opts omr.Options) Pipeline {
	return Pipeline{
		Locator:   omr.NewSheetLocator(opts),
		Rectifier: omr.NewPerspectiveRectifier(),
		Evaluator: omr.NewBubbleEvaluator(opts),
		Scorer:    omr.NewScoreCalculator(),
	}
}

type gradingService struct {
	pipeline    Pipeline
	configRepo  repository.GradingConfigRepository
	store       storage.ArtifactStore
	events      observer.Subject
	artifactExt string
}

// NewGradingService creates a grading service. events may be nil.
func NewGradingService(
	pipeline Pipeline,
	configRepo repository.GradingConfigRepository,
	store storage.ArtifactStore,
	events observer.Subject,
	artifactFormat string,
) GradingService {
	return &gradingService{
		pipeline:    pipeline,
		configRepo:  configRepo,
		store:       store,
		events:      events,
		artifactExt: artifactExtension(artifactFormat),
	}
}

// GradeSheet implements GradingService
func (s *gradingService) GradeSheet(ctx context.Context, data []byte, sheetID string) (*models.SheetResult, error) {
	start := time.Now()
	s.publish(ctx, observer.GradingEvent{EventType: observer.GradingStarted, SheetID: sheetID})

	result, err := s.grade(ctx, data, sheetID)
	if err != nil {
		event := observer.GradingEvent{
			EventType:      observer.GradingFailed,
			SheetID:        sheetID,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			event.ErrorType = string(appErr.Type)
		}
		s.publish(ctx, event)
		return nil, err
	}

	s.publish(ctx, observer.GradingEvent{
		EventType:      observer.GradingCompleted,
		SheetID:        sheetID,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"version":     result.Version,
			"total_score": result.TotalScore,
			"questions":   len(result.Answers),
		},
	})
	return result, nil
}

func (s *gradingService) grade(ctx context.Context, data []byte, sheetID string) (*models.SheetResult, error) {
	if err := validateSheetID(sheetID); err != nil {
		return nil, err
	}

	img, err := omr.DecodeImage(data)
	if err != nil {
		return nil, apperrors.NewDecodeError(err)
	}

	loc, err := s.pipeline.Locator.Locate(img)
	if err != nil {
		if errors.Is(err, omr.ErrNoSheetFound) {
			return nil, apperrors.NewNoSheetError(err)
		}
		return nil, apperrors.NewInternalError("sheet location failed", err)
	}
	s.publish(ctx, observer.GradingEvent{
		EventType: observer.SheetLocated,
		SheetID:   sheetID,
		Success:   true,
		Metadata: map[string]interface{}{
			"corner_source": string(loc.Source),
			"vertices":      loc.Vertices,
		},
	})

	rectified := s.pipeline.Rectifier.Rectify(img, loc.Corners)

	tpl, err := s.configRepo.LoadTemplate(ctx)
	if err != nil {
		return nil, apperrors.NewConfigError(err)
	}
	key, err := s.configRepo.LoadAnswerKey(ctx)
	if err != nil {
		return nil, apperrors.NewConfigError(err)
	}

	eval := s.pipeline.Evaluator.Evaluate(rectified.Gray, tpl)
	scores := s.pipeline.Scorer.Calculate(eval.Answers, key, tpl)

	paths, err := s.persist(ctx, sheetID, rectified.Color, eval.Overlay)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return assembleResult(sheetID, tpl, eval, scores, paths), nil
}

// persist writes the rectified sheet and the overlay. A failed rectified
// write skips the overlay.
func (s *gradingService) persist(ctx context.Context, sheetID string, rectified, overlay image.Image) (models.ArtifactPaths, error) {
	rectifiedName, overlayName := ArtifactNames(sheetID, s.artifactExt)

	var (
		paths models.ArtifactPaths
		err   error
	)
	if paths.Rectified, err = s.store.SaveImage(ctx, rectifiedName, rectified); err != nil {
		return paths, err
	}
	if paths.Overlay, err = s.store.SaveImage(ctx, overlayName, overlay); err != nil {
		return paths, err
	}

	s.publish(ctx, observer.GradingEvent{
		EventType: observer.ArtifactsStored,
		SheetID:   sheetID,
		Success:   true,
		Metadata: map[string]interface{}{
			"rectified": paths.Rectified,
			"overlay":   paths.Overlay,
		},
	})
	return paths, nil
}

func (s *gradingService) publish(ctx context.Context, event observer.GradingEvent) {
	if s.events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events.NotifyObservers(ctx, event)
}
