// Package intparse parses user-typed integer literals with an optional base
// prefix: 0x (hex), 0b (binary) or 0o (octal), case-insensitive. Anything
// else is read as decimal.
package intparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies why an input could not be parsed.
type ErrorKind uint8

const (
	Empty ErrorKind = iota
	Invalid
	Overflow
)

func (k ErrorKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Invalid:
		return "invalid"
	case Overflow:
		return "overflow"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error reports a failed parse together with the original input.
type Error struct {
	Kind  ErrorKind
	Input string
}

func (e *Error) Error() string {
	switch e.Kind {
	case Empty:
		return "cannot parse empty string into an integer"
	case Overflow:
		return fmt.Sprintf("%s is too large/small to be interpreted as the given integer type", e.Input)
	default:
		return fmt.Sprintf("cannot parse %s into an integer", e.Input)
	}
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, &Error{Kind: Overflow}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Input == "" || t.Input == e.Input)
}

// ParseU8 parses s as an unsigned 8-bit integer. A 0x, 0b or 0o prefix
// selects the base; surrounding whitespace is ignored.
func ParseU8(s string) (uint8, error) {
	v, err := parseUnsigned(s, 8)
	return uint8(v), err
}

// ParseI8 is the signed counterpart of ParseU8.
func ParseI8(s string) (int8, error) {
	v, err := parseSigned(s, 8)
	return int8(v), err
}

// ParseU16 parses s as an unsigned 16-bit integer.
func ParseU16(s string) (uint16, error) {
	v, err := parseUnsigned(s, 16)
	return uint16(v), err
}

// ParseI16 parses s as a signed 16-bit integer.
func ParseI16(s string) (int16, error) {
	v, err := parseSigned(s, 16)
	return int16(v), err
}

// ParseU32 parses s as an unsigned 32-bit integer.
func ParseU32(s string) (uint32, error) {
	v, err := parseUnsigned(s, 32)
	return uint32(v), err
}

// ParseI32 parses s as a signed 32-bit integer.
func ParseI32(s string) (int32, error) {
	v, err := parseSigned(s, 32)
	return int32(v), err
}

// ParseU64 parses s as an unsigned 64-bit integer. Values that do not fit
// report Overflow.
func ParseU64(s string) (uint64, error) {
	return parseUnsigned(s, 64)
}

// ParseI64 parses s as a signed 64-bit integer.
func ParseI64(s string) (int64, error) {
	return parseSigned(s, 64)
}

// splitBase detects the base prefix and returns the remaining digits.
func splitBase(s string) (int, string) {
	if len(s) >= 2 {
		switch strings.ToLower(s[:2]) {
		case "0x":
			return 16, s[2:]
		case "0b":
			return 2, s[2:]
		case "0o":
			return 8, s[2:]
		}
	}
	return 10, s
}

// prepare trims the input and resolves its base. Underscores are rejected
// because strconv would otherwise accept them for prefixed literals only.
func prepare(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, "", &Error{Kind: Empty, Input: input}
	}
	base, digits := splitBase(trimmed)
	if digits == "" || strings.ContainsRune(digits, '_') {
		return 0, "", &Error{Kind: Invalid, Input: input}
	}
	return base, digits, nil
}

func parseUnsigned(input string, bits int) (uint64, error) {
	base, digits, err := prepare(input)
	if err != nil {
		return 0, err
	}
	// One leading '+' is accepted, as ParseInt does for signed kinds.
	v, err := strconv.ParseUint(strings.TrimPrefix(digits, "+"), base, bits)
	if err != nil {
		return 0, convError(err, input)
	}
	return v, nil
}

func parseSigned(input string, bits int) (int64, error) {
	base, digits, err := prepare(input)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(digits, base, bits)
	if err != nil {
		return 0, convError(err, input)
	}
	return v, nil
}

func convError(err error, input string) error {
	if errors.Is(err, strconv.ErrRange) {
		return &Error{Kind: Overflow, Input: input}
	}
	return &Error{Kind: Invalid, Input: input}
}
