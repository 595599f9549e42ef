package repository

import "errors"

var (
	// ErrTemplateNotFound indicates the template document does not exist
	ErrTemplateNotFound = errors.New("template not found")

	// ErrAnswerKeyNotFound indicates the answer key document does not exist
	ErrAnswerKeyNotFound = errors.New("answer key not found")

	// ErrMalformedDocument indicates a document that is not valid JSON or fails validation
	ErrMalformedDocument = errors.New("malformed document")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
