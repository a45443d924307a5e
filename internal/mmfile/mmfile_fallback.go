//go:build !unix

package mmfile

import "github.com/cockroachdb/errors"

// MapAnon is unavailable without mmap.
func MapAnon(n int) (*Region, error) {
	return nil, errors.Wrapf(ErrUnsupported, "anonymous mapping of %d bytes", n)
}

// MapTemp is unavailable without mmap.
func MapTemp(dir string, n int) (*Region, error) {
	return nil, errors.Wrapf(ErrUnsupported, "file mapping of %d bytes", n)
}

// Unmap is a no-op; no region can be created on this platform.
func (r *Region) Unmap() error {
	if r != nil {
		r.data = nil
	}
	return nil
}
