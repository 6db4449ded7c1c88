package interfaces

import (
	"context"

	"github.com/m-mizutani/appassoc/pkg/domain/model"
)

// CheckUseCase runs the association checks of a domain
type CheckUseCase interface {
	// AppSiteAssociation fetches and projects the App Site Association document
	AppSiteAssociation(ctx context.Context, domain string) (*model.AppSiteAssociationResult, error)

	// AssetLinks fetches and projects the assetlinks.json document
	AssetLinks(ctx context.Context, domain string) ([]model.AssetLink, error)

	// Check runs both steps independently and collects their outcomes
	Check(ctx context.Context, domain string) *model.CheckReport
}
