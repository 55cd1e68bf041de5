package dataio

import (
	"fmt"
	"strconv"
	"strings"
)

// Ints parses the first n tokens of s as integers. Extra tokens are ignored.
func Ints(s string, line, n int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("want %d integers, got %d tokens", n, len(fields))}
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// ExactInts is like Ints but also rejects lines with more than n tokens.
func ExactInts(s string, line, n int) ([]int, error) {
	if got := len(strings.Fields(s)); got != n {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("want exactly %d integers, got %d tokens", n, got)}
	}
	return Ints(s, line, n)
}

// Floats parses the first n tokens of s as float64. Extra tokens are ignored.
func Floats(s string, line, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, &ParseError{Line: line, Err: fmt.Errorf("want %d numbers, got %d tokens", n, len(fields))}
	}
	return parseFloats(fields[:n], line)
}

// AllFloats parses every token of s as float64.
func AllFloats(s string, line int) ([]float64, error) {
	return parseFloats(strings.Fields(s), line)
}

func parseFloats(fields []string, line int) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		out[i] = v
	}
	return out, nil
}
