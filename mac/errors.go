package mac

import "errors"

// ErrParse is returned for any frame that cannot be decoded: truncated
// input, unknown command identifiers, unsupported features or invalid
// enumeration values. No partial frame is returned alongside it.
var ErrParse = errors.New("malformed MAC frame")
