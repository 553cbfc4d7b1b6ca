package vm

import (
	"fmt"

	"github.com/stokes/schlep/isa"
)

// Stack is an operand stack whose reads are total: popping or peeking an
// empty stack yields 0 instead of faulting. A sticky underflow flag records
// that a read ever fabricated a value, as a diagnostic for callers that
// care; execution itself never consults it.
//
// The zero value is an empty stack.
type Stack struct {
	data      []isa.Value
	underflow bool
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds a value on top.
func (s *Stack) Push(v isa.Value) {
	s.data = append(s.data, v)
}

// Pop removes and returns the top value, or 0 if the stack is empty.
func (s *Stack) Pop() isa.Value {
	if n := len(s.data); n > 0 {
		v := s.data[n-1]
		s.data = s.data[:n-1]
		return v
	}
	s.underflow = true
	return 0
}

// Pop2 removes and returns the top two values. Missing values read as 0.
func (s *Stack) Pop2() (top, under isa.Value) {
	return s.Pop(), s.Pop()
}

// Peek returns the top value without removing it, or 0 if the stack is
// empty.
func (s *Stack) Peek() isa.Value {
	if n := len(s.data); n > 0 {
		return s.data[n-1]
	}
	s.underflow = true
	return 0
}

// Peek2 returns the top two values without removing them. Missing values
// read as 0.
func (s *Stack) Peek2() (top, under isa.Value) {
	switch n := len(s.data); {
	case n > 1:
		return s.data[n-1], s.data[n-2]
	case n > 0:
		s.underflow = true
		return s.data[n-1], 0
	default:
		s.underflow = true
		return 0, 0
	}
}

// Depth returns the number of values held.
func (s *Stack) Depth() int {
	return len(s.data)
}

// Clear empties the stack, keeping its capacity.
func (s *Stack) Clear() {
	s.data = s.data[:0]
}

// Reset empties the stack and clears the underflow flag.
func (s *Stack) Reset() {
	s.Clear()
	s.underflow = false
}

// Underflowed reports whether any read ever ran past the bottom.
func (s *Stack) Underflowed() bool {
	return s.underflow
}

// Values returns a bottom-to-top copy of the contents.
func (s *Stack) Values() []isa.Value {
	out := make([]isa.Value, len(s.data))
	copy(out, s.data)
	return out
}

func (s *Stack) String() string {
	return fmt.Sprintf("%v", s.data)
}
