// Package sizefmt parses and renders allocation sizes.
//
// All multipliers are binary: "1K" and "1KiB" both mean 1024 bytes.
package sizefmt

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Binary multiples.
const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
)

// ErrBadSize is returned when a size string cannot be parsed.
var ErrBadSize = errors.New("sizefmt: invalid size")

var printer = message.NewPrinter(language.English)

// Size is a byte count that reads and writes as text such as "10M".
type Size int

// Parse reads sizes like "4096", "64K", "10M", "1GiB" or "512 KB".
func Parse(s string) (Size, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if text == "" {
		return 0, errors.Wrapf(ErrBadSize, "empty size")
	}

	text = strings.TrimSuffix(text, "IB")
	text = strings.TrimSuffix(text, "B")

	mult := 1
	switch {
	case strings.HasSuffix(text, "K"):
		mult = KiB
	case strings.HasSuffix(text, "M"):
		mult = MiB
	case strings.HasSuffix(text, "G"):
		mult = GiB
	}
	if mult != 1 {
		text = text[:len(text)-1]
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(ErrBadSize, "%q", s)
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrBadSize, "%q is negative", s)
	}
	if n > int(^uint(0)>>1)/mult {
		return 0, errors.Wrapf(ErrBadSize, "%q overflows", s)
	}
	return Size(n * mult), nil
}

// Bytes returns the size as an int.
func (s Size) Bytes() int { return int(s) }

// String renders the size in its shortest exact form.
func (s Size) String() string { return Short(int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Short renders n using the largest binary unit that divides it exactly,
// e.g. 10485760 -> "10M", 1000 -> "1000B".
func Short(n int) string {
	switch {
	case n != 0 && n%GiB == 0:
		return strconv.Itoa(n/GiB) + "G"
	case n != 0 && n%MiB == 0:
		return strconv.Itoa(n/MiB) + "M"
	case n != 0 && n%KiB == 0:
		return strconv.Itoa(n/KiB) + "K"
	default:
		return strconv.Itoa(n) + "B"
	}
}

// Human renders n with one decimal in the largest unit not exceeding it.
func Human(n int) string {
	switch {
	case n >= GiB:
		return printer.Sprintf("%.1f GiB", float64(n)/GiB)
	case n >= MiB:
		return printer.Sprintf("%.1f MiB", float64(n)/MiB)
	case n >= KiB:
		return printer.Sprintf("%.1f KiB", float64(n)/KiB)
	default:
		return printer.Sprintf("%d B", n)
	}
}

// Grouped renders n as a digit-grouped byte count, e.g. "10,485,760 bytes".
func Grouped(n int) string {
	return printer.Sprintf("%d bytes", n)
}
