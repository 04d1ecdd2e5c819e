package reminder

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/notexe/lembretes/internal/recurrence"
)

// Field limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names, the names users see in exports.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("recurrence", func(fl validator.FieldLevel) bool {
		t := recurrence.Type(fl.Field().String())
		return t == "" || t.Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

var fieldMessages = map[string]string{
	"id":            "id is required",
	"title":         fmt.Sprintf("title is required and must be at most %d characters", MaxTitleLength),
	"description":   fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
	"dateTime":      "invalid date",
	"recurringType": "recurring reminders need a type: daily, weekly or monthly",
	"streak":        "streak must not be negative",
	"updatedAt":     "updatedAt must not be before createdAt",
	"theme":         "unknown theme (supported: light, dark, auto)",
	"language":      "unknown language (supported: pt, en)",
}

// ValidationError lists every rejected field with a message for the user.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid reminder: " + describeFields(e.Fields)
}

func describeFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return strings.Join(parts, "; ")
}

// fieldErrors runs the struct tags of v and returns one message per failing
// field, or nil when v is valid.
func fieldErrors(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		fields[fe.Field()] = msg
	}
	return fields
}

// IsValidTitle reports whether title is non-blank and at most 100 characters
// once surrounding whitespace is trimmed.
func IsValidTitle(title string) bool {
	return validate.Var(strings.TrimSpace(title), fmt.Sprintf("required,max=%d", MaxTitleLength)) == nil
}

func IsValidDescription(description string) bool {
	return validate.Var(description, fmt.Sprintf("max=%d", MaxDescriptionLength)) == nil
}

// IsValidDate reports whether t was set.
func IsValidDate(t time.Time) bool {
	return !t.IsZero()
}

func IsFutureDate(t, now time.Time) bool {
	return recurrence.IsFuture(t, now)
}

// Validate checks in before it is persisted. New reminders must be due in
// the future; edits may keep a due instant that has already passed.
func (in Input) Validate(now time.Time, isNew bool) error {
	in.Title = strings.TrimSpace(in.Title)

	fields := fieldErrors(in)
	if _, bad := fields["dateTime"]; !bad && isNew && !IsFutureDate(in.DateTime, now) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["dateTime"] = "date must be in the future"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// checkInvariants verifies a stored reminder is well formed.
func (r Reminder) checkInvariants() error {
	if fields := fieldErrors(r); len(fields) > 0 {
		return fmt.Errorf("reminder %q: %s", r.ID, describeFields(fields))
	}
	return nil
}

func (s Settings) validate() error {
	if fields := fieldErrors(s); len(fields) > 0 {
		return fmt.Errorf("invalid settings: %s", describeFields(fields))
	}
	return nil
}
