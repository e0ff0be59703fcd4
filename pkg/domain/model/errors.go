package model

import "github.com/m-mizutani/goerr/v2"

// ErrInvalidReport is returned when a RiskReport would violate one of its
// invariants. Callers match it with errors.Is.
var ErrInvalidReport = goerr.New("invalid report")

// Context keys for error values
const (
	FieldKey = "field"
	ValueKey = "value"
	IndexKey = "index"
)
