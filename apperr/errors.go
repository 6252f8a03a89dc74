package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Unauthorized is returned when the caller lacks the required role or does
// not own the resource it is acting on.
var Unauthorized = errors.New("unauthorized")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")
