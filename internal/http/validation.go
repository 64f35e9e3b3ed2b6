package http

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidations adds the custom binding rules used by the entity payloads.
// It is safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

// bindingErrorMessage turns binding failures into a short client message naming the fields.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldName(fe))
	}
	return "invalid or missing fields: " + strings.Join(fields, ", ")
}

// fieldName maps struct fields back to their JSON names.
func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Quote":
		return "quote"
	case "AuthorName":
		return "author_name"
	case "Tag":
		return "tag"
	}
	if strings.HasPrefix(fe.StructField(), "RelatedTags") {
		return "related_tags"
	}
	return strings.ToLower(fe.Field())
}
