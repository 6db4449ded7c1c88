package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/appassoc/pkg/domain/interfaces"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type checkUseCase struct {
	client interfaces.WellKnownClient
	now    func() time.Time
}

// NewCheck creates a new instance of CheckUseCase
func NewCheck(client interfaces.WellKnownClient) interfaces.CheckUseCase {
	return &checkUseCase{
		client: client,
		now:    time.Now,
	}
}

// AppSiteAssociation fetches the App Site Association document of domain and
// projects the webcredentials apps and applinks details out of it
func (uc *checkUseCase) AppSiteAssociation(ctx context.Context, domain string) (*model.AppSiteAssociationResult, error) {
	logger := ctxlog.From(ctx)

	doc, err := uc.client.FetchAppSiteAssociation(ctx, domain)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch App Site Association", goerr.V("domain", domain))
	}

	if doc.IsEmpty() {
		logger.Warn("App Site Association has neither webcredentials nor applinks", "domain", domain)
	}

	result := extractAppSiteAssociation(domain, doc)

	logger.Info("App Site Association fetched",
		"domain", domain,
		"webcredentials_apps", len(result.WebCredentialsApps),
		"applinks_details", len(result.AppLinksDetails),
	)

	return result, nil
}

// AssetLinks fetches the assetlinks.json document of domain and projects its statements
func (uc *checkUseCase) AssetLinks(ctx context.Context, domain string) ([]model.AssetLink, error) {
	logger := ctxlog.From(ctx)

	links, err := uc.client.FetchAssetLinks(ctx, domain)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch assetlinks.json", goerr.V("domain", domain))
	}

	entries := extractAssetLinks(links)

	logger.Info("assetlinks.json fetched",
		"domain", domain,
		"entries", len(entries),
	)

	return entries, nil
}

// Check runs both steps. A failure of one step does not prevent the other from running.
func (uc *checkUseCase) Check(ctx context.Context, domain string) *model.CheckReport {
	report := &model.CheckReport{
		ID:        uuid.NewString(),
		Domain:    domain,
		CheckedAt: uc.now(),
	}

	logger := ctxlog.From(ctx).With("check_id", report.ID)
	ctx = ctxlog.With(ctx, logger)

	logger.Debug("Starting domain check", "domain", domain)

	report.AppSiteAssociation, report.AppSiteAssociationErr = uc.AppSiteAssociation(ctx, domain)
	if report.AppSiteAssociationErr != nil {
		logger.Info("App Site Association step failed", "error", report.AppSiteAssociationErr)
	}

	report.AssetLinks, report.AssetLinksErr = uc.AssetLinks(ctx, domain)
	if report.AssetLinksErr != nil {
		logger.Info("assetlinks.json step failed", "error", report.AssetLinksErr)
	}

	return report
}

// extractAppSiteAssociation projects doc into the rendered shape. Missing
// sections become empty sequences.
func extractAppSiteAssociation(domain string, doc *model.AppSiteAssociation) *model.AppSiteAssociationResult {
	result := &model.AppSiteAssociationResult{
		Domain:             domain,
		WebCredentialsApps: []string{},
		AppLinksDetails:    []model.AppLinkDetail{},
	}

	if doc.WebCredentials != nil && doc.WebCredentials.Apps != nil {
		result.WebCredentialsApps = doc.WebCredentials.Apps
	}

	if doc.AppLinks != nil {
		for _, detail := range doc.AppLinks.Details {
			if detail.Paths == nil {
				detail.Paths = []string{}
			}
			result.AppLinksDetails = append(result.AppLinksDetails, detail)
		}
	}

	return result
}

func extractAssetLinks(links []model.AssetLink) []model.AssetLink {
	entries := make([]model.AssetLink, 0, len(links))
	for _, link := range links {
		if link.Relation == nil {
			link.Relation = []string{}
		}
		if link.Target.SHA256CertFingerprints == nil {
			link.Target.SHA256CertFingerprints = []string{}
		}
		entries = append(entries, link)
	}
	return entries
}
