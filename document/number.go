/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package document

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrNotNumeric is returned when a Number does not hold a decimal number.
	ErrNotNumeric = errors.New("is not a decimal number")

	// ErrFractional is returned when an integer is requested from a fractional Number.
	ErrFractional = errors.New("has a fractional part")

	// ErrOutOfRange is returned when a Number does not fit the requested integer type.
	ErrOutOfRange = errors.New("is out of range")
)

// NewNumber returns the Number holding i.
func NewNumber(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// Int64 parses the number as an int64. Integral values written with a fraction or
// exponent ("3.0", "3e2") are accepted; values with a fractional part are not
// truncated.
func (n Number) Int64() (int64, error) {
	text := strings.TrimSpace(string(n))
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	r, ok := n.rat()
	if !ok {
		return 0, ErrNotNumeric
	}
	if !r.IsInt() {
		return 0, ErrFractional
	}
	if !r.Num().IsInt64() {
		return 0, ErrOutOfRange
	}
	return r.Num().Int64(), nil
}

// Valid reports whether the number holds a decimal number.
func (n Number) Valid() bool {
	_, ok := n.rat()
	return ok
}

func (n Number) rat() (*big.Rat, bool) {
	text := strings.TrimSpace(string(n))
	if text == "" {
		return nil, false
	}
	// big.Rat also accepts "1/3", which is not a decimal literal.
	if strings.Contains(text, "/") {
		return nil, false
	}
	return new(big.Rat).SetString(text)
}

func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	ra, okA := a.rat()
	rb, okB := b.rat()
	if !okA || !okB {
		return false
	}
	return ra.Cmp(rb) == 0
}
