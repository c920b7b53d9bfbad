package settings

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates a configured value that can not be converted
// to the type the setting requires.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidValueError carries the offending key and raw value of an invalid
// setting. It matches ErrInvalidConfiguration with errors.Is.
type InvalidValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: invalid value for %s %q", ErrInvalidConfiguration, e.Key, e.Value)
	}

	return fmt.Sprintf("%s: invalid value for %s %q: %s", ErrInvalidConfiguration, e.Key, e.Value, e.Err)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) work.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}
