package core

import "errors"

// ErrNotFound signals an operation that requires an existing record was
// given an ID that matches nothing. Only Update reports it: FindOne and
// Delete treat a miss as an expected outcome and return sentinels instead.
var ErrNotFound = errors.New("record not found")
