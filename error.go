package spinlock

import "github.com/brickingsoft/errors"

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "spinlock"
)

// ErrAcquisitionTimeout is returned by the bounded acquire operations when
// the attempt budget runs out while the lock is still held elsewhere.
var ErrAcquisitionTimeout = errors.Define("lock acquisition timed out: exceeded maximum attempts")

// IsAcquisitionTimeout reports whether err is an ErrAcquisitionTimeout.
func IsAcquisitionTimeout(err error) bool {
	return errors.Is(err, ErrAcquisitionTimeout)
}

func errAcquisitionTimeout() error {
	return errors.From(ErrAcquisitionTimeout, errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
}
