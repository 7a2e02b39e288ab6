package content

import (
	"fmt"
	"reflect"

	"folio-backend/internal/validation"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a field-level validation failure.
type ErrorKind string

const (
	KindMissingRequired  ErrorKind = "missing-required"
	KindOutOfRangeLength ErrorKind = "out-of-range-length"
	KindFailedPattern    ErrorKind = "failed-pattern"
	KindInvalidEnumValue ErrorKind = "invalid-enum-value"
	KindDuplicateValue   ErrorKind = "duplicate-value"
)

type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationResult is valid when it carries no errors.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Details flattens the result into the field → kind map used by HTTP error
// payloads.
func (r ValidationResult) Details() map[string]string {
	if r.Valid() {
		return nil
	}
	details := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		details[e.Field] = string(e.Kind)
	}
	return details
}

var schema = validation.New()

// Validate checks a candidate case study against the authoring rules. It is
// pure and reports every failure, not just the first.
func Validate(cs CaseStudy) ValidationResult {
	var res ValidationResult
	res.Errors = append(res.Errors, fieldErrors("", schema.Struct(cs))...)

	for i, blk := range cs.Body {
		prefix := fmt.Sprintf("body[%d]", i)
		if blk == nil {
			res.Errors = append(res.Errors, FieldError{Field: prefix, Kind: KindMissingRequired, Message: "block is empty"})
			continue
		}
		if unknown, ok := blk.(UnknownBlock); ok && unknown.Malformed {
			res.Errors = append(res.Errors, FieldError{
				Field:   prefix,
				Kind:    KindFailedPattern,
				Message: fmt.Sprintf("malformed %q block", unknown.Type),
			})
			continue
		}
		if unknown, ok := blk.(UnknownBlock); ok {
			res.Errors = append(res.Errors, FieldError{
				Field:   prefix + "._type",
				Kind:    KindInvalidEnumValue,
				Message: fmt.Sprintf("unknown block type %q", unknown.Type),
			})
			continue
		}
		res.Errors = append(res.Errors, fieldErrors(prefix, schema.Struct(blk))...)
		if text, ok := blk.(TextBlock); ok {
			res.Errors = append(res.Errors, markErrors(prefix, text)...)
		}
	}
	return res
}

// ValidateCatalog validates every record and additionally requires slugs to
// be unique. The later record of a duplicate pair carries the error.
func ValidateCatalog(items []CaseStudy) map[int]ValidationResult {
	out := make(map[int]ValidationResult)
	seen := make(map[string]int, len(items))
	for i, cs := range items {
		res := Validate(cs)
		if first, ok := seen[cs.Slug]; ok && cs.Slug != "" {
			res.Errors = append(res.Errors, FieldError{
				Field:   "slug",
				Kind:    KindDuplicateValue,
				Message: fmt.Sprintf("slug %q already used by record %d", cs.Slug, first),
			})
		} else {
			seen[cs.Slug] = i
		}
		if !res.Valid() {
			out[i] = res
		}
	}
	return out
}

func markErrors(prefix string, b TextBlock) []FieldError {
	var errs []FieldError
	for i, span := range b.Spans {
		for _, mark := range span.Marks {
			if mark == MarkStrong || mark == MarkEm {
				continue
			}
			if _, ok := b.MarkDef(mark); !ok {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("%s.children[%d].marks", prefix, i),
					Kind:    KindInvalidEnumValue,
					Message: fmt.Sprintf("mark %q has no definition", mark),
				})
			}
		}
	}
	return errs
}

func fieldErrors(prefix string, err error) []FieldError {
	if err == nil {
		return nil
	}
	verrs := schema.ValidationErrors(err)
	if verrs == nil {
		return []FieldError{{Field: prefix, Kind: KindFailedPattern, Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := validation.FieldPath(fe)
		if prefix != "" {
			field = prefix + "." + field
		}
		kind, msg := classify(fe)
		out = append(out, FieldError{Field: field, Kind: kind, Message: msg})
	}
	return out
}

func classify(fe validator.FieldError) (ErrorKind, string) {
	switch fe.Tag() {
	case "required":
		return KindMissingRequired, "is required"
	case "min", "max", "len":
		if fe.Kind() == reflect.Slice && fe.Tag() == "min" && reflect.ValueOf(fe.Value()).Len() == 0 {
			return KindMissingRequired, "at least " + fe.Param() + " required"
		}
		if fe.Tag() == "min" {
			return KindOutOfRangeLength, "must be at least " + fe.Param() + " characters"
		}
		if fe.Tag() == "max" {
			return KindOutOfRangeLength, "must be at most " + fe.Param() + " characters"
		}
		return KindOutOfRangeLength, "must be exactly " + fe.Param() + " characters"
	case "oneof":
		return KindInvalidEnumValue, "must be one of: " + fe.Param()
	case "gte", "lte":
		return KindOutOfRangeLength, "out of range"
	default:
		return KindFailedPattern, "must be a valid " + fe.Tag()
	}
}
