// Package tabopt analyzes extracted tables and applies merge and prune suggestions
// with undo history.
package tabopt

import (
	"github.com/ukaji3/tabopt-go/pkg/tabopt/optimizer"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/parser"
)

// Options configures a Session.
type Options struct {
	// Keywords is the classifier keyword table.
	// If nil, optimizer.DefaultKeywords is used.
	Keywords optimizer.Keywords
	// Thresholds holds the suggestion generator limits.
	Thresholds optimizer.Thresholds
	// TableParams controls table detection in workbooks.
	TableParams parser.TableDetectionParams
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Keywords:    optimizer.DefaultKeywords(),
		Thresholds:  optimizer.DefaultThresholds(),
		TableParams: parser.DefaultTableParams(),
	}
}

// keywords returns the configured keyword table.
func (o Options) keywords() optimizer.Keywords {
	if o.Keywords != nil {
		return o.Keywords
	}
	return optimizer.DefaultKeywords()
}

// thresholds returns the configured thresholds, defaulting a zero value.
func (o Options) thresholds() optimizer.Thresholds {
	if o.Thresholds == (optimizer.Thresholds{}) {
		return optimizer.DefaultThresholds()
	}
	return o.Thresholds
}

// tableParams returns the configured detection parameters, defaulting a zero value.
func (o Options) tableParams() parser.TableDetectionParams {
	if o.TableParams == (parser.TableDetectionParams{}) {
		return parser.DefaultTableParams()
	}
	return o.TableParams
}
