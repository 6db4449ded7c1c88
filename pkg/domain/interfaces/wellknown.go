package interfaces

import (
	"context"

	"github.com/m-mizutani/appassoc/pkg/domain/model"
)

// WellKnownClient fetches the association documents of a domain
type WellKnownClient interface {
	// FetchAppSiteAssociation fetches the apple-app-site-association document from Apple's CDN
	FetchAppSiteAssociation(ctx context.Context, domain string) (*model.AppSiteAssociation, error)

	// FetchAssetLinks fetches https://www.{domain}/.well-known/assetlinks.json
	FetchAssetLinks(ctx context.Context, domain string) ([]model.AssetLink, error)
}
