//go:build linux

package mmfile

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Resident reports how many pages of data are currently backed by physical
// memory, along with the total page count. data must start on a page boundary,
// which every Region does.
func Resident(data []byte) (resident, total int, err error) {
	if len(data) == 0 {
		return 0, 0, nil
	}
	page := os.Getpagesize()
	vec := make([]byte, (len(data)+page-1)/page)
	if err := unix.Mincore(data, vec); err != nil {
		return 0, 0, errors.Wrap(err, "mmfile: mincore")
	}
	for _, v := range vec {
		if v&1 != 0 {
			resident++
		}
	}
	return resident, len(vec), nil
}
