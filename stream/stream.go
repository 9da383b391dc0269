package stream

import (
	"strconv"
	"strings"
)

// Stream is an ordered sequence of integers flowing through a chain.
type Stream struct {
	Name   string
	Values []int64
}

// New creates a stream with the given name and values.
func New(name string, values ...int64) *Stream {
	return &Stream{Name: name, Values: values}
}

// Range creates a stream holding every integer in [from, to].
func Range(from, to int64) *Stream {
	s := New("range")
	for v := from; v <= to; v++ {
		s.Append(v)
		if v == to {
			break
		}
	}
	return s
}

// Append adds a value to the end of the stream.
func (s *Stream) Append(v int64) {
	s.Values = append(s.Values, v)
}

// Len returns the number of values.
func (s *Stream) Len() int {
	return len(s.Values)
}

// String returns a compact representation of the stream.
func (s *Stream) String() string {
	if len(s.Values) == 0 {
		return s.Name + "[] (0 values)"
	}
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return s.Name + "[" + strings.Join(parts, ", ") + "]"
}
