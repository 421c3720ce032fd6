package domain

import "errors"

// ErrInvalidID marks a malformed document id so handlers can answer 400
// instead of treating it as a store failure.
var ErrInvalidID = errors.New("invalid document id")
