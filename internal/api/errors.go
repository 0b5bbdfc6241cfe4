package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrServiceUnavailable is wrapped into transport errors produced while the
// circuit breaker is open.
var ErrServiceUnavailable = errors.New("task service unavailable")

// StatusError is a non-2xx answer from the task service.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	s := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

func (e *StatusError) HTTPStatus() int { return e.StatusCode }

func (e *StatusError) RemoteMessage() string { return e.Message }

// IsNotFound reports whether err is a 404 from the task service.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// TransportError is a call that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: transport failure", e.Method, e.Path)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

const maxMessageLen = 200

func newStatusError(method, path string, code int, body []byte) *StatusError {
	return &StatusError{Method: method, Path: path, StatusCode: code, Message: messageFromBody(body)}
}

// messageFromBody extracts a short reason from an error body: the usual JSON
// message fields first, otherwise the trimmed text.
func messageFromBody(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, k := range []string{"message", "error", "detail", "title"} {
			if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
				return truncate(strings.TrimSpace(v))
			}
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return truncate(strings.TrimSpace(s))
	}
	return truncate(raw)
}

// truncate cuts s to at most maxMessageLen bytes on a rune boundary.
func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
