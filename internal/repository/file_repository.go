package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/anime-shed/omr-inspector-go/internal/omr"
	"github.com/anime-shed/omr-inspector-go/pkg/validation"
)

// FileConfigRepository reads the template and answer key from JSON files on
// every call
type FileConfigRepository struct {
	templatePath  string
	answerKeyPath string
	validator     *validation.TemplateValidator
}

// NewFileConfigRepository creates a repository backed by two JSON files
func NewFileConfigRepository(templatePath, answerKeyPath string) GradingConfigRepository {
	return &FileConfigRepository{
		templatePath:  templatePath,
		answerKeyPath: answerKeyPath,
		validator:     validation.NewTemplateValidator(),
	}
}

// LoadTemplate reads and validates the template file
func (r *FileConfigRepository) LoadTemplate(ctx context.Context) (*omr.Template, error) {
	var tpl omr.Template
	if err := readJSON(ctx, r.templatePath, ErrTemplateNotFound, &tpl); err != nil {
		return nil, err
	}
	if err := r.validator.ValidateTemplate(&tpl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, r.templatePath, err)
	}
	return &tpl, nil
}

// LoadAnswerKey reads and validates the answer key file. A document without
// an "answers" object is an empty key.
func (r *FileConfigRepository) LoadAnswerKey(ctx context.Context) (*omr.AnswerKey, error) {
	var key omr.AnswerKey
	if err := readJSON(ctx, r.answerKeyPath, ErrAnswerKeyNotFound, &key); err != nil {
		return nil, err
	}
	if err := r.validator.ValidateAnswerKey(&key); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, r.answerKeyPath, err)
	}
	return &key, nil
}

func readJSON(ctx context.Context, path string, notFound error, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", notFound, path)
		}
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedDocument, path, err)
	}
	return nil
}
