package deps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusCoder is implemented by collaborator errors that carry the HTTP
// status of a rejected call.
type StatusCoder interface {
	HTTPStatus() int
}

// remoteMessager exposes the service-supplied rejection text, if any.
type remoteMessager interface {
	RemoteMessage() string
}

type edgeErrorPresentation struct {
	kind    ErrorKind
	status  int
	message string
}

func presentEdgeError(err error, verbose bool) edgeErrorPresentation {
	if err == nil {
		return edgeErrorPresentation{kind: TransportFailure, message: "unknown error"}
	}

	full := err.Error()

	var sc StatusCoder
	if errors.As(err, &sc) && sc.HTTPStatus() != 0 {
		code := sc.HTTPStatus()
		if verbose {
			return edgeErrorPresentation{kind: RemoteRejected, status: code, message: full}
		}
		msg := ""
		var rm remoteMessager
		if errors.As(err, &rm) {
			msg = strings.TrimSpace(rm.RemoteMessage())
		}
		status := fmt.Sprintf("%d %s", code, http.StatusText(code))
		if msg == "" {
			return edgeErrorPresentation{kind: RemoteRejected, status: code, message: "rejected (" + status + ")"}
		}
		return edgeErrorPresentation{kind: RemoteRejected, status: code, message: fmt.Sprintf("rejected (%s): %s", status, msg)}
	}

	if errors.Is(err, context.Canceled) {
		return edgeErrorPresentation{kind: TransportFailure, message: "cancelled"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return edgeErrorPresentation{kind: TransportFailure, message: "timed out"}
	}

	if verbose {
		return edgeErrorPresentation{kind: TransportFailure, message: full}
	}
	if scrubbed := scrubRequestFromErrorString(strings.TrimSpace(full)); scrubbed != "" {
		return edgeErrorPresentation{kind: TransportFailure, message: scrubbed}
	}
	return edgeErrorPresentation{kind: TransportFailure, message: "request failed"}
}

// scrubRequestFromErrorString drops the leading `Method "URL": ` part that
// net/http puts on *url.Error strings, e.g.
//
//	Post "http://localhost:9001/api/tasks/…": dial tcp [::1]:9001: connection refused
func scrubRequestFromErrorString(s string) string {
	for _, m := range []string{"Get ", "Post ", "Put ", "Patch ", "Delete ", "GET ", "POST ", "PUT ", "PATCH ", "DELETE "} {
		if !strings.HasPrefix(s, m) {
			continue
		}
		if i := strings.Index(s, "\": "); i >= 0 {
			return strings.TrimSpace(s[i+3:])
		}
		if j := strings.Index(s, ": "); j >= 0 {
			return strings.TrimSpace(s[j+2:])
		}
		break
	}
	return s
}

// Describe returns the text an edge outcome would carry for err. Tool
// handlers use it for single-call failures too.
func Describe(err error, verbose bool) string {
	return presentEdgeError(err, verbose).message
}
