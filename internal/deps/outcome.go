package deps

// ErrorKind classifies why an edge operation failed.
type ErrorKind string

const (
	ErrorKindNone ErrorKind = ""
	// RemoteRejected means the task service answered with a non-2xx status.
	RemoteRejected ErrorKind = "RemoteRejected"
	// TransportFailure means the call did not complete: network error,
	// timeout, cancellation or an open circuit breaker.
	TransportFailure ErrorKind = "TransportFailure"
)

// EdgeOutcome is the terminal record for one dispatched EdgeRequest.
//
// It is emitted by the executor and consumed by Aggregate.
type EdgeOutcome struct {
	Request   EdgeRequest `json:"request"`
	Succeeded bool        `json:"succeeded"`
	// Detail is the label used when reporting the edge (title or identifier).
	Detail    string    `json:"detail"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	// Reason is a presentable failure description; empty on success.
	Reason string `json:"reason,omitempty"`
	// StatusCode is set for RemoteRejected outcomes.
	StatusCode int `json:"status_code,omitempty"`
}

func succeeded(req EdgeRequest) EdgeOutcome {
	return EdgeOutcome{Request: req, Succeeded: true, Detail: detailFor(req)}
}

func failed(req EdgeRequest, p edgeErrorPresentation) EdgeOutcome {
	return EdgeOutcome{
		Request:    req,
		Succeeded:  false,
		Detail:     detailFor(req),
		ErrorKind:  p.kind,
		Reason:     p.message,
		StatusCode: p.status,
	}
}

func detailFor(req EdgeRequest) string {
	if req.Label != "" {
		return req.Label
	}
	return req.OtherID
}
