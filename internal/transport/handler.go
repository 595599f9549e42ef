package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anime-shed/omr-inspector-go/internal/config"
	apperrors "github.com/anime-shed/omr-inspector-go/internal/errors"
	"github.com/anime-shed/omr-inspector-go/internal/logger"
	"github.com/anime-shed/omr-inspector-go/internal/observer"
	"github.com/anime-shed/omr-inspector-go/internal/service"
	"github.com/anime-shed/omr-inspector-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UploadField is the multipart field carrying the sheet photo
const UploadField = "image"

// NewHandler builds the HTTP API. metrics may be nil.
func NewHandler(svc service.GradingService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		corsMiddleware(cfg.CORSAllowedOrigins),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsHandler(metrics))
	r.POST("/upload", uploadSheet(svc, cfg))

	if cfg.StorageBackend == config.StorageLocal && cfg.OutputDir != "" {
		r.Static("/outputs", cfg.OutputDir)
	}

	return r
}

func uploadSheet(svc service.GradingService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		sheetID := uuid.NewString()
		log := logger.WithFields(logrus.Fields{
			"sheet_id":   sheetID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		})
		log.Info("Processing sheet upload")

		data, err := readUpload(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		result, err := svc.GradeSheet(ctx, data, sheetID)
		if err != nil {
			status := apperrors.GetStatusCode(err)
			log.WithError(err).WithFields(logrus.Fields{
				"status_code":        status,
				"processing_time_ms": time.Since(startTime).Milliseconds(),
			}).Warn("Sheet grading failed")
			c.JSON(status, models.NewGradeResponse(nil, apperrors.GetMessage(err)))
			return
		}

		log.WithFields(logrus.Fields{
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"total_score":        result.TotalScore,
			"version":            result.Version,
		}).Info("Sheet graded successfully")

		c.JSON(http.StatusOK, models.NewGradeResponse(result, ""))
	}
}

// readUpload returns the bytes of the image field. Failures are validation
// errors, except an oversized body, which is returned as is.
func readUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, apperrors.NewValidationError("missing or unreadable image upload", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable image upload", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsHandler(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

// Middleware and helper functions
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed["*"] || allowed[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err.Err), "request processing failed", err.Err)
		}
	}
}

func determineStatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
