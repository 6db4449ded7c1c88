package model

import "time"

// CheckReport holds the outcome of both steps of a domain check. Each step
// has either a result or an error.
type CheckReport struct {
	ID        string
	Domain    string
	CheckedAt time.Time

	AppSiteAssociation    *AppSiteAssociationResult
	AppSiteAssociationErr error

	AssetLinks    []AssetLink
	AssetLinksErr error
}

// Failed reports whether any step of the check returned an error
func (r *CheckReport) Failed() bool {
	return r.AppSiteAssociationErr != nil || r.AssetLinksErr != nil
}
