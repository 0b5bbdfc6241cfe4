package deps

// BatchReport is the aggregated, input-ordered result of one batch.
type BatchReport struct {
	PrimaryID string `json:"primary_id"`
	Kind      Kind   `json:"kind"`
	// FromSnapshot is set when the edges came from the current dependency
	// list (unlink-all) rather than from the caller.
	FromSnapshot bool          `json:"from_snapshot,omitempty"`
	Outcomes     []EdgeOutcome `json:"outcomes"`
	Succeeded    int           `json:"succeeded"`
	Failed       int           `json:"failed"`
}

// Empty reports whether the batch had nothing to do.
func (r BatchReport) Empty() bool {
	return len(r.Outcomes) == 0
}

// Partial reports whether some, but not all, edges failed.
func (r BatchReport) Partial() bool {
	return r.Failed > 0 && r.Succeeded > 0
}

// Aggregate counts outcomes and carries them through unchanged.
func Aggregate(primaryID string, kind Kind, fromSnapshot bool, outcomes []EdgeOutcome) BatchReport {
	r := BatchReport{
		PrimaryID:    primaryID,
		Kind:         kind,
		FromSnapshot: fromSnapshot,
		Outcomes:     outcomes,
	}
	if r.Outcomes == nil {
		r.Outcomes = []EdgeOutcome{}
	}
	for _, o := range outcomes {
		if o.Succeeded {
			r.Succeeded++
		} else {
			r.Failed++
		}
	}
	return r
}
