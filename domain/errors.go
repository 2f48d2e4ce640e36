package domain

import "errors"

// Error categories. Module errors wrap one of these so callers can branch with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrTransport     = errors.New("transport error")
	ErrParse         = errors.New("parse error")
	ErrPersistence   = errors.New("persistence error")
)

var ErrFieldPreferenceNotFound = errors.New("field preference not found")
