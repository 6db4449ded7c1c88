package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/utils/table"
	"github.com/m-mizutani/goerr/v2"
)

var (
	appSiteAssociationColumns = []string{"Domain", "Webcredentials Apps", "Applinks App ID", "Applinks Paths"}
	assetLinksColumns         = []string{"Package Name", "Namespace", "SHA256 Cert Fingerprints", "Relation"}
)

const (
	appSiteAssociationTitle = "Domain Information"
	assetLinksTitle         = "Assetlinks.json Information"
)

// config holds internal printer configuration
type config struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// Option is a functional option for Printer configuration
type Option func(*config)

// WithWriter sets the writer for rendered results
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithErrWriter sets the writer for error messages
func WithErrWriter(w io.Writer) Option {
	return func(c *config) {
		c.errOut = w
	}
}

// WithColor enables or disables ANSI colors
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// Printer renders check results to the console
type Printer struct {
	format model.OutputFormat
	cfg    *config
}

// NewPrinter creates a Printer for format
func NewPrinter(format model.OutputFormat, opts ...Option) *Printer {
	cfg := &config{
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  !color.NoColor,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Printer{
		format: format,
		cfg:    cfg,
	}
}

// Report renders both steps of report in order. A failed step prints its
// error and the next step is rendered regardless.
func (p *Printer) Report(report *model.CheckReport) error {
	if report.AppSiteAssociationErr != nil {
		p.Error(report.AppSiteAssociationErr)
	} else if err := p.AppSiteAssociation(report.AppSiteAssociation); err != nil {
		return err
	}

	if report.AssetLinksErr != nil {
		p.Error(report.AssetLinksErr)
	} else if err := p.AssetLinks(report.AssetLinks); err != nil {
		return err
	}

	return nil
}

// AppSiteAssociation renders the App Site Association result
func (p *Printer) AppSiteAssociation(result *model.AppSiteAssociationResult) error {
	if p.format == model.OutputJSON {
		return p.writeJSON(result)
	}

	tbl := table.New(appSiteAssociationTitle, appSiteAssociationColumns...)
	webCredentials := inlineJSON(result.WebCredentialsApps)
	for _, detail := range result.AppLinksDetails {
		appID := detail.AppID
		if appID == "" {
			appID = strings.Join(detail.AppIDs, "\n")
		}

		if err := tbl.AddRow(result.Domain, webCredentials, appID, inlineJSON(detail.Paths)); err != nil {
			return err
		}
	}

	return tbl.Render(p.cfg.out, table.WithColor(p.cfg.color))
}

// AssetLinks renders the assetlinks.json entries
func (p *Printer) AssetLinks(entries []model.AssetLink) error {
	if p.format == model.OutputJSON {
		if entries == nil {
			entries = []model.AssetLink{}
		}
		return p.writeJSON(entries)
	}

	tbl := table.New(assetLinksTitle, assetLinksColumns...)
	for _, entry := range entries {
		if err := tbl.AddRow(
			entry.Target.PackageName,
			entry.Target.Namespace,
			strings.Join(entry.Target.SHA256CertFingerprints, "\n"),
			strings.Join(entry.Relation, "\n"),
		); err != nil {
			return err
		}
	}

	return tbl.Render(p.cfg.out, table.WithColor(p.cfg.color))
}

// Error prints err as a red "Error: ..." line. Non-200 responses are shown
// without the wrapping context since their message already names the URL.
func (p *Printer) Error(err error) {
	msg := err.Error()
	var fetchErr *model.FetchError
	if errors.As(err, &fetchErr) {
		msg = fetchErr.Error()
	}

	c := color.New(color.FgRed)
	if p.cfg.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = fmt.Fprintln(p.cfg.errOut, c.Sprint("Error: "+msg))
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.cfg.out)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode JSON output")
	}
	return nil
}

// inlineJSON formats values as a single-line JSON array with ", " separators
func inlineJSON(values []string) string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		var sb strings.Builder
		enc := json.NewEncoder(&sb)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(v) // a string always encodes
		items = append(items, strings.TrimSuffix(sb.String(), "\n"))
	}
	return "[" + strings.Join(items, ", ") + "]"
}
