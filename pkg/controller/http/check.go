package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/appassoc/pkg/domain/interfaces"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// CheckResponse is the body of a domain check response
type CheckResponse struct {
	ID                 string                 `json:"id"`
	Domain             string                 `json:"domain"`
	CheckedAt          time.Time              `json:"checked_at"`
	AppSiteAssociation AppSiteAssociationStep `json:"app_site_association"`
	AssetLinks         AssetLinksStep         `json:"assetlinks"`
}

// AppSiteAssociationStep is the outcome of the App Site Association step
type AppSiteAssociationStep struct {
	Result *model.AppSiteAssociationResult `json:"result"`
	Error  *StepError                      `json:"error"`
}

// AssetLinksStep is the outcome of the assetlinks.json step
type AssetLinksStep struct {
	Result []model.AssetLink `json:"result"`
	Error  *StepError        `json:"error"`
}

// StepError describes why a step failed. URL and StatusCode are set for non-200 responses.
type StepError struct {
	Message    string `json:"message"`
	URL        string `json:"url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// CheckHandler serves domain checks
type CheckHandler struct {
	checkUC interfaces.CheckUseCase
	metrics *metrics
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(checkUC interfaces.CheckUseCase, metrics *metrics) *CheckHandler {
	return &CheckHandler{
		checkUC: checkUC,
		metrics: metrics,
	}
}

// Handle runs a check of the domain in the URL path
func (h *CheckHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	domain := chi.URLParam(r, "domain")
	query := &model.DomainQuery{Domain: domain, Format: model.OutputJSON}
	if err := query.Validate(); err != nil {
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	report := h.checkUC.Check(ctx, query.Domain)

	h.observe(documentAppSiteAssociation, report.AppSiteAssociationErr)
	h.observe(documentAssetLinks, report.AssetLinksErr)
	for _, stepErr := range []error{report.AppSiteAssociationErr, report.AssetLinksErr} {
		if stepErr != nil && !errutil.IsFetchError(stepErr) {
			errutil.Handle(ctx, "Unexpected error in domain check", goerr.Wrap(stepErr, "check failed", goerr.V("domain", domain)))
		}
	}

	resp := &CheckResponse{
		ID:        report.ID,
		Domain:    report.Domain,
		CheckedAt: report.CheckedAt,
		AppSiteAssociation: AppSiteAssociationStep{
			Result: report.AppSiteAssociation,
			Error:  newStepError(report.AppSiteAssociationErr),
		},
		AssetLinks: AssetLinksStep{
			Result: report.AssetLinks,
			Error:  newStepError(report.AssetLinksErr),
		},
	}

	writeJSON(ctx, w, resp, http.StatusOK)
}

func (h *CheckHandler) observe(document string, err error) {
	if h.metrics == nil {
		return
	}

	switch {
	case err == nil:
		h.metrics.observe(document, outcomeOK)
	case errutil.IsFetchError(err):
		h.metrics.observe(document, outcomeFetchError)
	default:
		h.metrics.observe(document, outcomeError)
	}
}

func newStepError(err error) *StepError {
	if err == nil {
		return nil
	}

	var fetchErr *model.FetchError
	if errors.As(err, &fetchErr) {
		return &StepError{
			Message:    fetchErr.Error(),
			URL:        fetchErr.URL,
			StatusCode: fetchErr.StatusCode,
		}
	}

	return &StepError{Message: err.Error()}
}
