// Package selection turns the operator's menu input into a choice.
//
// The input is a single signed integer: n creates catalog entry n, -n removes
// live allocation n. Both are 1-based, so 0 (and "-0") is never valid. Only
// "quit" ends the session; a blank line is not a number. End of input is the
// caller's concern.
package selection

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidNumber is returned when the input is not an integer.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidChoice is returned when the integer does not name a catalog
	// entry or a live allocation.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Action is what a Choice asks for.
type Action uint8

const (
	Quit Action = iota
	Create
	Remove
)

func (a Action) String() string {
	switch a {
	case Quit:
		return "quit"
	case Create:
		return "create"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Choice is a parsed selection. Index is 1-based and unused for Quit.
type Choice struct {
	Action Action
	Index  int
}

// Parse validates input against the current catalog and active set sizes.
func Parse(input string, catalogLen, activeLen int) (Choice, error) {
	text := strings.TrimSpace(input)
	if strings.EqualFold(text, "quit") {
		return Choice{Action: Quit}, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return Choice{}, errors.Wrapf(ErrInvalidNumber, "%q", text)
	}

	switch {
	case n > 0 && n <= catalogLen:
		return Choice{Action: Create, Index: n}, nil
	case n < 0 && n >= -activeLen: // -n overflows at math.MinInt
		return Choice{Action: Remove, Index: -n}, nil
	default:
		return Choice{}, errors.Wrapf(ErrInvalidChoice, "%d", n)
	}
}

// Message renders err for the menu's error line.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidNumber):
		return "Invalid number"
	case errors.Is(err, ErrInvalidChoice):
		return "Invalid choice"
	default:
		return err.Error()
	}
}
