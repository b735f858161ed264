package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrEncode = errors.New("encode response failed")
)

// Wrap annotates err with the operation and the sentinel kind so callers
// can match with errors.Is.
func Wrap(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
