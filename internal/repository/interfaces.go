package repository

import (
	"context"

	"github.com/anime-shed/omr-inspector-go/internal/omr"
)

// GradingConfigRepository provides the sheet layout and answer key used to
// grade a sheet. Implementations must not cache: every call reflects the
// documents as they are at that moment.
type GradingConfigRepository interface {
	// LoadTemplate reads and validates the sheet template
	LoadTemplate(ctx context.Context) (*omr.Template, error)

	// LoadAnswerKey reads and validates the answer key
	LoadAnswerKey(ctx context.Context) (*omr.AnswerKey, error)
}
