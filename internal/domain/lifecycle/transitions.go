// Package lifecycle defines the state machines behind job participation and
// account deletion.
//
// Participation of one user in one job:
//
//	NONE ──► APPLIED ──► HIRED
//	  ▲         │  ▲        │
//	  └─────────┘  └────────┘
//	  (withdraw)    (revoke)
//
// NONE → HIRED and HIRED → NONE are not allowed; a hired worker must be
// revoked back to APPLIED first.
package lifecycle

// Participation is the relationship of a user to a job.
type Participation string

const (
	ParticipationNone    Participation = "NONE"
	ParticipationApplied Participation = "APPLIED"
	ParticipationHired   Participation = "HIRED"
)

var participationTransitions = map[Participation][]Participation{
	ParticipationNone:    {ParticipationApplied},
	ParticipationApplied: {ParticipationHired, ParticipationNone},
	ParticipationHired:   {ParticipationApplied},
}

// CanParticipate reports whether from → to is an edge of the participation graph.
func CanParticipate(from, to Participation) bool {
	for _, s := range participationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParticipationOf derives the state from the applicant record, if any.
func ParticipationOf(exists, hired bool) Participation {
	switch {
	case !exists:
		return ParticipationNone
	case hired:
		return ParticipationHired
	default:
		return ParticipationApplied
	}
}

// Deletion is the account-deletion state of a user.
//
//	NONE ──► PENDING ──► APPROVED
//	  ▲         │
//	  └─────────┴──► REJECTED (pending flag reset, a new request is allowed)
type Deletion string

const (
	DeletionNone     Deletion = "none"
	DeletionPending  Deletion = "pending"
	DeletionApproved Deletion = "approved"
	DeletionRejected Deletion = "rejected"
)

var deletionTransitions = map[Deletion][]Deletion{
	DeletionNone:     {DeletionPending},
	DeletionPending:  {DeletionApproved, DeletionRejected},
	DeletionRejected: {DeletionPending},
	// APPROVED is terminal
}

// CanMoveDeletion reports whether from → to is allowed.
func CanMoveDeletion(from, to Deletion) bool {
	for _, s := range deletionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DeletionOf maps the stored flag and status to a state. An empty status is NONE.
func DeletionOf(pending bool, status string) Deletion {
	if pending {
		return DeletionPending
	}
	switch Deletion(status) {
	case DeletionApproved:
		return DeletionApproved
	case DeletionRejected:
		return DeletionRejected
	}
	return DeletionNone
}
