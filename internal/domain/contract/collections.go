package contract

// Collection names shared by use cases that address collections generically
// (batch writer, record store) and by the store adapters.
const (
	CollectionUsers             = "users"
	CollectionJobs              = "jobs"
	CollectionApplicants        = "applicants"
	CollectionApplications      = "applications"
	CollectionAcceptedJobs      = "accepted_jobs"
	CollectionNotifications     = "notifications"
	CollectionBroadcasts        = "broadcasts"
	CollectionArchivedUsers     = "archived_users"
	CollectionDeletionWorkflows = "deletion_workflows"
	CollectionEmployers         = "employers"
	CollectionTokens            = "tokens"
	CollectionFeedback          = "feedback"
	CollectionJobChats          = "job_chats"
	CollectionRatings           = "ratings"
)

// PurgeTarget names a collection and the field that links its records to a user.
type PurgeTarget struct {
	Collection string
	Field      string
}

// UserPurgeTargets lists every collection holding records keyed to a user
// that account deletion removes. Records of the purged jobs in
// JobCascadeCollections are removed on top of these.
var UserPurgeTargets = []PurgeTarget{
	{Collection: CollectionEmployers, Field: "user_id"},
	{Collection: CollectionFeedback, Field: "user_id"},
	{Collection: CollectionJobChats, Field: "applicant_id"},
	{Collection: CollectionJobs, Field: "employer_id"},
	{Collection: CollectionNotifications, Field: "user_id"},
	{Collection: CollectionRatings, Field: "rated_user"},
}

// JobCascadeCollections hold records linked to a job by job_id. They are
// purged together with the job.
var JobCascadeCollections = []string{
	CollectionApplicants,
	CollectionApplications,
	CollectionAcceptedJobs,
}
