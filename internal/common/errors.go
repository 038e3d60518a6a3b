package common

import "errors"

// ErrorValidation marks input rejected locally, before any request is sent.
var ErrorValidation = errors.New("validation error")
