package building

import "errors"

var ErrUnknownField = errors.New("unknown field")
