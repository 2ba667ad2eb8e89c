package hp

import "errors"

// Sentinel errors for runtime operations. Lookups never return these;
// absence is reported with a false ok value instead.
var (
	ErrInvalidSelector   = errors.New("hp: invalid selector")
	ErrUnsupportedTarget = errors.New("hp: unsupported target")
	ErrNotRunning        = errors.New("hp: runtime is not running")
)

// IsInvalidSelector checks if err is a selector parse failure.
func IsInvalidSelector(err error) bool {
	return errors.Is(err, ErrInvalidSelector)
}

// IsUnsupportedTarget checks if err reports a target of the wrong kind.
func IsUnsupportedTarget(err error) bool {
	return errors.Is(err, ErrUnsupportedTarget)
}

// IsNotRunning checks if err reports that the runtime's loop is not running.
func IsNotRunning(err error) bool {
	return errors.Is(err, ErrNotRunning)
}
