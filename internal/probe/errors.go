package probe

import "errors"

// Sentinel kinds for probe errors.
var (
	ErrConfig = errors.New("invalid probe config")
	ErrProbe  = errors.New("contract check failed")
)
