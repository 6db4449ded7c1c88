package model

import "github.com/m-mizutani/goerr/v2"

// OutputFormat selects how check results are rendered
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

// DomainQuery is the input of a single check
type DomainQuery struct {
	Domain string
	Format OutputFormat
}

// Validate checks that the query can be executed
func (q *DomainQuery) Validate() error {
	if q.Domain == "" {
		return goerr.New("domain is required")
	}

	switch q.Format {
	case OutputTable, OutputJSON:
		return nil
	default:
		return goerr.New("unsupported output format", goerr.V("format", q.Format))
	}
}
