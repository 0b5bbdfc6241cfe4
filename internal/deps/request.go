package deps

import (
	"errors"
	"fmt"
	"strings"

	"taskmcp/internal/validate"
)

// Kind is the edge mutation a batch performs.
type Kind string

const (
	KindLink   Kind = "LINK"
	KindUnlink Kind = "UNLINK"
)

var (
	// ErrInvalidIdentifier rejects a batch before anything is dispatched.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrEmptyBatch means no other identifiers were supplied and there is no
	// snapshot to fall back on.
	ErrEmptyBatch = errors.New("no dependency identifiers supplied")
	// ErrPrefetchFailed wraps a failure of the dependency listing that precedes
	// an unlink-all batch.
	ErrPrefetchFailed = errors.New("listing current dependencies failed")
)

// EdgeRequest is one depends-on edge to establish or remove.
type EdgeRequest struct {
	PrimaryID string `json:"primary_id"`
	OtherID   string `json:"other_id"`
	Kind      Kind   `json:"kind"`
	// Label is a human label known before dispatch (the dependency title when
	// the request was built from a snapshot).
	Label string `json:"label,omitempty"`
}

// DependencyRef is one entry of a task's current dependency list.
type DependencyRef struct {
	ID    string
	Title string
}

// Snapshot is the dependency list fetched at a single point in time for the
// unlink-all variant. A nil *Snapshot means no prefetch took place.
type Snapshot struct {
	Deps []DependencyRef
}

// Decompose turns a raw batch into one EdgeRequest per "other" identifier, in
// input order.
//
// otherIDsRaw is a comma-separated list; entries are trimmed and blanks are
// dropped. Duplicates are kept. When kind is KindUnlink and the list is blank,
// the snapshot is used instead; an empty snapshot yields a zero-length batch
// with a nil error.
func Decompose(primaryID, otherIDsRaw string, kind Kind, snapshot *Snapshot) ([]EdgeRequest, error) {
	if kind != KindLink && kind != KindUnlink {
		return nil, fmt.Errorf("unsupported batch kind %q", kind)
	}

	primary, err := validate.ID(primaryID)
	if err != nil {
		return nil, fmt.Errorf("%w: task ID: %v", ErrInvalidIdentifier, err)
	}

	others := splitIDs(otherIDsRaw)
	if len(others) == 0 {
		if kind != KindUnlink || snapshot == nil {
			return nil, ErrEmptyBatch
		}
		reqs := make([]EdgeRequest, 0, len(snapshot.Deps))
		for _, d := range snapshot.Deps {
			reqs = append(reqs, EdgeRequest{PrimaryID: primary, OtherID: d.ID, Kind: kind, Label: d.Title})
		}
		return reqs, nil
	}

	// Validate the whole list first so a bad entry never leaves a partial batch.
	for _, id := range others {
		if !validate.IsID(id) {
			return nil, fmt.Errorf("%w: dependency ID %q is not a UUID", ErrInvalidIdentifier, id)
		}
	}

	reqs := make([]EdgeRequest, 0, len(others))
	for _, id := range others {
		reqs = append(reqs, EdgeRequest{PrimaryID: primary, OtherID: id, Kind: kind})
	}
	return reqs, nil
}

func splitIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
