package models

import "errors"

// ErrSourceUnavailable marks a platform that could not be reached or
// returned an unparseable payload. One source failing never aborts the
// tick or the other sources.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrMalformedRecord marks a single contest record that failed
// normalization. The record is dropped, the batch survives.
var ErrMalformedRecord = errors.New("malformed contest record")
