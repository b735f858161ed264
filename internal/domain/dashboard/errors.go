package dashboard

import "errors"

// ErrShape reports a payload that does not have the shape the dashboard draws.
var ErrShape = errors.New("invalid payload shape")
