package model

// AppSiteAssociation is the apple-app-site-association document served by Apple's CDN
type AppSiteAssociation struct {
	AppLinks       *AppLinks       `json:"applinks,omitempty"`
	WebCredentials *WebCredentials `json:"webcredentials,omitempty"`
	AppClips       *AppClips       `json:"appclips,omitempty"`
}

// AppLinks is the universal links section
type AppLinks struct {
	Apps    []string        `json:"apps,omitempty"`
	Details []AppLinkDetail `json:"details,omitempty"`
}

// AppLinkDetail binds one or more apps to URL patterns. Older documents use
// AppID and Paths, newer ones AppIDs and Components.
type AppLinkDetail struct {
	AppID      string             `json:"appID"`
	AppIDs     []string           `json:"appIDs,omitempty"`
	Paths      []string           `json:"paths"`
	Components []AppLinkComponent `json:"components,omitempty"`
}

// AppLinkComponent is a single URL pattern of the components syntax
type AppLinkComponent struct {
	Path     string            `json:"/,omitempty"`
	Fragment string            `json:"#,omitempty"`
	Query    map[string]string `json:"?,omitempty"`
	Exclude  bool              `json:"exclude,omitempty"`
	Comment  string            `json:"comment,omitempty"`
}

// WebCredentials is the shared web credentials section
type WebCredentials struct {
	Apps []string `json:"apps,omitempty"`
}

// AppClips is the App Clips section
type AppClips struct {
	Apps []string `json:"apps,omitempty"`
}

// IsEmpty reports whether the document has neither a webcredentials nor an applinks section
func (x *AppSiteAssociation) IsEmpty() bool {
	return x == nil || (x.AppLinks == nil && x.WebCredentials == nil)
}

// AppSiteAssociationResult is the projection of AppSiteAssociation that gets rendered
type AppSiteAssociationResult struct {
	Domain             string          `json:"domain"`
	WebCredentialsApps []string        `json:"webcredentials_apps"`
	AppLinksDetails    []AppLinkDetail `json:"applinks_details"`
}

// AssetLink is one statement of a Digital Asset Links assetlinks.json document
type AssetLink struct {
	Relation []string        `json:"relation"`
	Target   AssetLinkTarget `json:"target"`
}

// AssetLinkTarget identifies the app (or site) a statement refers to
type AssetLinkTarget struct {
	Namespace              string   `json:"namespace"`
	PackageName            string   `json:"package_name"`
	SHA256CertFingerprints []string `json:"sha256_cert_fingerprints"`
	Site                   string   `json:"site,omitempty"`
}
