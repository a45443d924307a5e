//go:build !linux

package mmfile

import "github.com/cockroachdb/errors"

// Resident is only implemented on Linux.
func Resident(data []byte) (resident, total int, err error) {
	return 0, 0, errors.Wrap(ErrUnsupported, "page residency query")
}
