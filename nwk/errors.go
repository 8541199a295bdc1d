package nwk

import "errors"

// ErrParse is returned for any truncated or malformed network frame.
var ErrParse = errors.New("malformed NWK frame")
