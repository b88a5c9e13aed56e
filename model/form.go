package model

import "time"

// Submission records one answer-set for one step of one process. Submissions
// are append-only: a resubmission of the same step creates a new row and the
// current value per step is derived, never stored. ID is assigned by the
// store on save; creation order is monotonic so the highest ID per (process,
// step) pair is the latest submission. Payload is stored and returned
// verbatim, never interpreted.
type Submission struct {
	ID        int64                  `json:"id"`
	ProcessID string                 `json:"processId"`
	Step      string                 `json:"step"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Clone returns a shallow-payload copy detached from s.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	ret := *s
	return &ret
}
