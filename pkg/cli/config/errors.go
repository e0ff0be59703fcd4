package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/service/source"
)

// Sentinel errors for report definition loading
var (
	ErrReportNotFound    = source.ErrNotFound
	ErrUnsupportedFormat = source.ErrUnsupportedFormat
	ErrInvalidReportFile = goerr.New("invalid report file")
)

// Context keys for error values
const (
	ReportPathKey = "report_path"
	FormatKey     = "format"
	FieldKey      = "field"
	ValueKey      = "value"
)
