package domain

// MembershipSummary holds the per-request facts the redirect decision needs.
// It is derived from the company service lookups and never persisted.
type MembershipSummary struct {
	IsAdminOfAnyCompany bool
	IsWorkerOfAnyTeam   bool
}

// SummarizeMemberships reduces the raw membership lists to the two facts
// the post-reset redirect cares about.
func SummarizeMemberships(adminOf AdminOfList, workerOf WorkerOfList) MembershipSummary {
	return MembershipSummary{
		IsAdminOfAnyCompany: len(adminOf.Companies) > 0,
		IsWorkerOfAnyTeam:   len(workerOf.Teams) > 0,
	}
}
