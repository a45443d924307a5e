package selection

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want Choice
	}{
		{"1", Choice{Action: Create, Index: 1}},
		{" 10 \n", Choice{Action: Create, Index: 10}},
		{"+3", Choice{Action: Create, Index: 3}},
		{"-1", Choice{Action: Remove, Index: 1}},
		{"-2", Choice{Action: Remove, Index: 2}},
		{"QUIT", Choice{Action: Quit}},
		{" quit\n", Choice{Action: Quit}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in, 10, 2)
		require.NoError(t, err, "Parse(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
	}
}

func TestParse_InvalidNumber(t *testing.T) {
	for _, in := range []string{"abc", "1.5", "1 2", "--1", "0x10", "", "\n", "  \t ", "quit now", "99999999999999999999"} {
		_, err := Parse(in, 10, 2)
		require.Error(t, err, "Parse(%q)", in)
		assert.True(t, errors.Is(err, ErrInvalidNumber), "Parse(%q): %v", in, err)
	}
}

func TestParse_InvalidChoice(t *testing.T) {
	cases := []struct {
		in         string
		catalogLen int
		activeLen  int
	}{
		{"0", 10, 2},
		{"-0", 10, 2},
		{"11", 10, 0},
		{"-1", 10, 0},
		{"-3", 10, 2},
		{"-9223372036854775808", 10, 2},
		{"9223372036854775807", 10, 2},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in, tc.catalogLen, tc.activeLen)
		require.Error(t, err, "Parse(%q) = %+v", tc.in, got)
		assert.True(t, errors.Is(err, ErrInvalidChoice), "Parse(%q): %v", tc.in, err)
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "quit", Quit.String())
	assert.Equal(t, "create", Create.String())
	assert.Equal(t, "remove", Remove.String())
	assert.Equal(t, "unknown", Action(9).String())
}

func TestMessage(t *testing.T) {
	_, err := Parse("abc", 1, 0)
	assert.Equal(t, "Invalid number", Message(err))

	_, err = Parse("0", 1, 0)
	assert.Equal(t, "Invalid choice", Message(err))

	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "disk on fire", Message(errors.New("disk on fire")))
}
