package resultsservice

import "errors"

// ErrFormatMismatch is returned when input does not carry the results signature.
var ErrFormatMismatch = errors.New("file is not a saved results file")
