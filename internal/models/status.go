// Status tracking for saved jobs.
//
// Typical progression:
//
//	saved ──► applied ──► interview ──► offer
//	   │          │            │
//	   └──────────┴────────────┴──► rejected
//
// rejected and offer are terminal.
package models

import "fmt"

// Status is the user-chosen tracking state of a saved job.
type Status string

const (
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// DefaultStatus is used when the user does not pick a status.
const DefaultStatus = StatusSaved

// Statuses lists every valid status, in progression order.
var Statuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

var forwardTransitions = map[Status][]Status{
	StatusSaved:     {StatusApplied, StatusRejected},
	StatusApplied:   {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, v := range Statuses {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsForwardTransition reports whether moving between two statuses
// follows the normal progression. The backend does not enforce this
// (statuses are user-chosen) but the stats view uses it to hint at
// likely next steps.
func IsForwardTransition(from, to Status) bool {
	for _, s := range forwardTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
