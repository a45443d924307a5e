package handle

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Strategy selects how an allocation is provisioned. The set is closed.
type Strategy uint8

const (
	StackResident Strategy = iota + 1
	HeapZeroed
	HeapFilled
	HeapUninitialized
	FileMapped
	AnonMapped
	AnonMappedTouched
)

// Kind is the resource variant a Strategy produces.
type Kind uint8

const (
	KindHeap Kind = iota + 1
	KindMapped
	KindStack
)

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindMapped:
		return "mapped"
	case KindStack:
		return "stack"
	default:
		return "unknown"
	}
}

// ErrUnknownStrategy is returned when parsing an unrecognized strategy key.
var ErrUnknownStrategy = errors.New("handle: unknown strategy")

var strategies = [...]struct {
	key   string
	label string
	kind  Kind
}{
	StackResident:     {"stack", "Stack allocation", KindStack},
	HeapZeroed:        {"heap-zeroed", "Heap zeroed", KindHeap},
	HeapFilled:        {"heap-filled", "Heap non-zero", KindHeap},
	HeapUninitialized: {"heap-uninit", "Heap uninitialized", KindHeap},
	FileMapped:        {"file-mapped", "Memory mapped", KindMapped},
	AnonMapped:        {"anon-mapped", "Anonymous mapped", KindMapped},
	AnonMappedTouched: {"anon-touched", "Anonymous mapped touched", KindMapped},
}

// Strategies returns every strategy in catalog order.
func Strategies() []Strategy {
	return []Strategy{
		StackResident,
		HeapZeroed,
		HeapFilled,
		HeapUninitialized,
		FileMapped,
		AnonMapped,
		AnonMappedTouched,
	}
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s >= StackResident && s <= AnonMappedTouched
}

// String returns the configuration key, e.g. "heap-filled".
func (s Strategy) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return strategies[s].key
}

// Label returns the operator-facing name prefix, e.g. "Heap non-zero".
func (s Strategy) Label() string {
	if !s.Valid() {
		return "Unknown"
	}
	return strategies[s].label
}

// Kind returns the resource variant the strategy produces.
func (s Strategy) Kind() Kind {
	if !s.Valid() {
		return 0
	}
	return strategies[s].kind
}

// ParseStrategy maps a configuration key back to its Strategy.
func ParseStrategy(key string) (Strategy, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, s := range Strategies() {
		if strategies[s].key == k {
			return s, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", key)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrUnknownStrategy, "value %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
