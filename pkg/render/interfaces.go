// Package render turns number crunch reports into plain text for logs and
// terminals.
package render

import "github.com/latoulicious/setforge/pkg/crunch"

// ReportRenderer renders a report in one of two sizes
type ReportRenderer interface {
	// Progress renders the report on a single line
	Progress(r *crunch.Report) string
	// Table renders a multi-line target versus actual breakdown
	Table(r *crunch.Report) string
}
