// Package redirect decides where a user lands after completing a password
// reset, based on their company and team memberships.
package redirect

import (
	"fmt"

	"github.com/smallbiznis/valora-web/internal/domain"
)

// Destination names a role-specific entry point as a subdomain label plus
// path; URL assembly against the apex domain happens separately.
type Destination struct {
	Subdomain string
	Path      string
}

var (
	// AdminApp is the scheduling application for company administrators.
	AdminApp = Destination{Subdomain: "app"}
	// MyAccount is the self-service page for workers.
	MyAccount = Destination{Subdomain: "myaccount"}
	// NewCompany is the onboarding page for users with no memberships.
	NewCompany = Destination{Subdomain: "www", Path: "/new_company/"}
)

// Select picks the destination for the given memberships. The order is a
// fixed priority: admins always land in the admin app, workers without an
// admin role land on their account page, everyone else starts onboarding.
func Select(m domain.MembershipSummary) Destination {
	if m.IsAdminOfAnyCompany {
		return AdminApp
	}
	if m.IsWorkerOfAnyTeam {
		return MyAccount
	}
	return NewCompany
}

// URL assembles the absolute external URL for the destination.
func (d Destination) URL(scheme, apex string) string {
	return fmt.Sprintf("%s://%s.%s%s", scheme, d.Subdomain, apex, d.Path)
}
