package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// RatingLabel is an internal credit rating grade such as "A1" or "BBB+"
type RatingLabel string

var ratingPattern = regexp.MustCompile(`^[A-D]{1,3}[1-3+-]?$`)

// Validate checks if the RatingLabel is valid
func (r RatingLabel) Validate() error {
	if r == "" {
		return goerr.New("rating label cannot be empty")
	}
	if !ratingPattern.MatchString(string(r)) {
		return goerr.New("rating label must be 1-3 grade letters A-D with an optional 1-3, + or - suffix", goerr.V("label", r))
	}
	return nil
}

// String returns the string representation of RatingLabel
func (r RatingLabel) String() string {
	return string(r)
}
