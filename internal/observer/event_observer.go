package observer

import (
	"context"
	"sync"
	"time"

	"github.com/anime-shed/omr-inspector-go/internal/logger"

	"github.com/sirupsen/logrus"
)

// GradingEvent represents a grading pipeline event
type GradingEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	SheetID        string                 `json:"sheet_id"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorType      string                 `json:"error_type,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of grading event
type EventType string

const (
	// GradingStarted when a sheet enters the pipeline
	GradingStarted EventType = "grading_started"
	// GradingCompleted when a sheet is graded and its artifacts stored
	GradingCompleted EventType = "grading_completed"
	// GradingFailed when any stage stops the pipeline
	GradingFailed EventType = "grading_failed"
	// SheetLocated when the sheet corners are resolved
	SheetLocated EventType = "sheet_located"
	// ArtifactsStored when both images are persisted
	ArtifactsStored EventType = "artifacts_stored"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event GradingEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event GradingEvent)
}

// LoggingObserver logs grading events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles grading events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event GradingEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"sheet_id":        event.SheetID,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
		fields["error_type"] = event.ErrorType
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case GradingStarted:
		entry.Info("Sheet grading started")
	case GradingCompleted:
		entry.Info("Sheet grading completed")
	case GradingFailed:
		entry.Error("Sheet grading failed")
	case SheetLocated, ArtifactsStored:
		entry.Debug("Sheet grading progressed")
	default:
		entry.Info("Grading event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from grading events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalSheets         int64
	gradedSheets        int64
	failedSheets        int64
	failuresByType      map[string]int64
	cornerSources       map[string]int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		failuresByType: make(map[string]int64),
		cornerSources:  make(map[string]int64),
	}
}

// OnEvent handles grading events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event GradingEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case GradingStarted:
		o.totalSheets++
	case GradingCompleted:
		o.gradedSheets++
		o.totalProcessingTime += event.ProcessingTime
	case GradingFailed:
		o.failedSheets++
		if event.ErrorType != "" {
			o.failuresByType[event.ErrorType]++
		}
	case SheetLocated:
		if source, ok := event.Metadata["corner_source"].(string); ok {
			o.cornerSources[source]++
		}
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.gradedSheets > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.gradedSheets)
	}

	failures := make(map[string]int64, len(o.failuresByType))
	for k, v := range o.failuresByType {
		failures[k] = v
	}
	sources := make(map[string]int64, len(o.cornerSources))
	for k, v := range o.cornerSources {
		sources[k] = v
	}

	return map[string]interface{}{
		"total_sheets":          o.totalSheets,
		"graded_sheets":         o.gradedSheets,
		"failed_sheets":         o.failedSheets,
		"failures_by_type":      failures,
		"corner_sources":        sources,
		"total_processing_time": o.totalProcessingTime.String(),
		"avg_processing_time":   avgProcessingTime.String(),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
	wg        sync.WaitGroup
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event without blocking the caller
func (p *EventPublisher) NotifyObservers(ctx context.Context, event GradingEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, observer := range observers {
		p.wg.Add(1)
		go func(obs Observer) {
			defer p.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}

// Wait blocks until every notification sent so far has been handled
func (p *EventPublisher) Wait() {
	p.wg.Wait()
}
