// Package validate holds the format checks applied to tool arguments before
// anything is sent to the task service.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"taskmcp/internal/domain"
)

var (
	ErrMissing   = errors.New("value is required")
	ErrMalformed = errors.New("value is malformed")
)

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func v() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// ID trims raw and checks that it is a task service identifier (a UUID).
// The trimmed identifier is returned on success.
func ID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrMissing
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q is not a UUID", ErrMalformed, id)
	}
	return id, nil
}

// IsID reports whether raw is a well-formed identifier.
func IsID(raw string) bool {
	_, err := ID(raw)
	return err == nil
}

// Priority parses a priority name case-insensitively.
func Priority(raw string) (domain.TaskPriority, error) {
	p := domain.TaskPriority(strings.ToUpper(strings.TrimSpace(raw)))
	switch p {
	case domain.TaskPriorityHigh, domain.TaskPriorityMedium, domain.TaskPriorityLow, domain.TaskPriorityNone:
		return p, nil
	case "":
		return "", ErrMissing
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrMalformed, raw)
	}
}

// Statuses splits a comma list of statuses, trimming and upper-casing each
// entry and dropping empty ones. Unknown names are passed through; the task
// service decides what it accepts.
func Statuses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToUpper(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ISODateTime checks a local ISO-8601 date-time such as 2024-12-31T23:59:59.
func ISODateTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrMissing
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02T15:04:05.999999999"} {
		if _, err := time.Parse(layout, s); err == nil {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not an ISO date-time", ErrMalformed, s)
}

// Struct runs the validate tags of a request DTO.
func Struct(s any) error {
	if err := v().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrMalformed, fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}
