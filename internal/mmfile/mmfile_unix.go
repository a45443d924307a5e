//go:build unix

package mmfile

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// writeStride is the chunk size used to fill backing files.
const writeStride = 64 << 10

// MapAnon creates a private anonymous read/write mapping of n bytes.
// The pages are reserved but nothing touches them.
func MapAnon(n int) (*Region, error) {
	if n <= 0 {
		return nil, errors.Newf("mmfile: invalid mapping size %d", n)
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: anonymous mmap of %d bytes", n)
	}
	return &Region{data: data}, nil
}

// MapTemp creates a uniquely named file in dir (os.TempDir when empty), writes
// n zero bytes to it, maps it read-only and removes the file. The mapping keeps
// the pages alive after the directory entry is gone.
func MapTemp(dir string, n int) (*Region, error) {
	if n <= 0 {
		return nil, errors.Newf("mmfile: invalid mapping size %d", n)
	}

	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return nil, errors.Wrap(err, "mmfile: create backing file")
	}
	path := f.Name()
	defer func() {
		_ = f.Close() // safe before return; mapping keeps pages alive
		_ = os.Remove(path)
	}()

	if err := writeZeros(f, n); err != nil {
		return nil, errors.Wrapf(err, "mmfile: write %d bytes to %s", n, path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, n, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: mmap %s", path)
	}
	return &Region{data: data, path: path}, nil
}

func writeZeros(w io.Writer, n int) error {
	stride := make([]byte, min(n, writeStride))
	for n > 0 {
		k := min(n, len(stride))
		if _, err := w.Write(stride[:k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// Unmap releases the mapping. Unmapping twice is a no-op.
func (r *Region) Unmap() error {
	if r == nil || r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	if err != nil && !errors.Is(err, unix.EINVAL) {
		return errors.Wrapf(err, "mmfile: munmap %d bytes", len(r.data))
	}
	// EINVAL means the range is already gone; treat it as released.
	r.data = nil
	return nil
}
