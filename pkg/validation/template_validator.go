package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anime-shed/omr-inspector-go/internal/omr"
	"github.com/go-playground/validator/v10"
)

// TemplateValidator checks decoded template and answer key documents before
// they reach the grading pipeline
type TemplateValidator struct {
	validate *validator.Validate
}

// NewTemplateValidator creates a validator using the struct tags on omr types
func NewTemplateValidator() *TemplateValidator {
	return &TemplateValidator{
		validate: validator.New(),
	}
}

// ValidateTemplate checks bbox shapes, the optional template size and the
// subject ranges
func (v *TemplateValidator) ValidateTemplate(tpl *omr.Template) error {
	if tpl == nil {
		return errors.New("template is empty")
	}

	if err := v.validate.Struct(tpl); err != nil {
		return describe(err)
	}

	for id := range tpl.Bubbles {
		if strings.TrimSpace(id) == "" {
			return errors.New("bubble id cannot be empty")
		}
	}

	for name, bounds := range tpl.Subjects {
		if bounds[0] > bounds[1] {
			return fmt.Errorf("subject %q has reversed range [%d, %d]", name, bounds[0], bounds[1])
		}
	}

	return nil
}

// ValidateAnswerKey rejects keys with blank question ids
func (v *TemplateValidator) ValidateAnswerKey(key *omr.AnswerKey) error {
	if key == nil {
		return errors.New("answer key is empty")
	}
	for qid := range key.Answers {
		if strings.TrimSpace(qid) == "" {
			return errors.New("answer key contains an empty question id")
		}
	}
	return nil
}

// describe flattens validator errors into a single readable message
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
