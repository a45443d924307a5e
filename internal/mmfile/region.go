// Package mmfile provides platform-specific helpers for anonymous and
// file-backed memory mappings.
package mmfile

import "github.com/cockroachdb/errors"

// ErrUnsupported is returned on platforms without mmap support.
var ErrUnsupported = errors.New("mmfile: memory mapping not supported on this platform")

// tempPattern names the ephemeral files backing file mappings.
const tempPattern = "memlab-*.map"

// Region is a live memory mapping. The zero value is an empty, unmapped region.
type Region struct {
	data []byte
	path string
}

// Bytes returns the mapped memory, or nil once unmapped.
func (r *Region) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

// Len returns the mapped length in bytes.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.data)
}

// Path returns the name the backing file had before it was unlinked.
// Anonymous regions return "".
func (r *Region) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Mapped reports whether the region still holds a mapping.
func (r *Region) Mapped() bool {
	return r != nil && r.data != nil
}
